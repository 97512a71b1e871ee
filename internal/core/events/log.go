package events

import "context"

// Log is the append-only event store, keyed by entity id.
//
// Implementations guarantee atomic append of each individual event and a total,
// stable order per key: oldest OccurredAt first, ties in append order. They do
// not detect conflicts between events, and they must not retry internally on
// behalf of the caller.
type Log interface {
	// Append stores a single event.
	Append(ctx context.Context, event *Event) error

	// ReadByKey returns every event of stream for key, oldest first.
	// An unknown key yields an empty slice, not an error.
	ReadByKey(ctx context.Context, stream Stream, key string) ([]*Event, error)

	// ReadByCorrelation returns the complete post streams of every post that
	// was created with ReplyTo equal to replyToPostID, oldest first. Later
	// events of those streams (deletions) are included even though they do not
	// carry ReplyTo themselves. Used for reply enumeration.
	ReadByCorrelation(ctx context.Context, replyToPostID string) ([]*Event, error)
}
