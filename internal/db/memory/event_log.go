// Package memory provides in-process implementations of the event log and the
// user repository, used by tests and by STORE=memory development runs.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"Chirp/internal/core/events"
)

// ErrDuplicateEvent is returned when an event id was already appended
var ErrDuplicateEvent = errors.New("duplicate event id")

type storedEvent struct {
	event events.Event
	seq   uint64
}

// EventLog is an events.Log kept in memory. Safe for concurrent use.
type EventLog struct {
	streams map[events.Stream]map[string][]storedEvent
	replies map[string][]string // parent post id -> reply post ids, first seen first
	ids     map[string]struct{}
	mu      sync.RWMutex
	seq     uint64
}

// NewEventLog creates an empty log
func NewEventLog() *EventLog {
	return &EventLog{
		streams: make(map[events.Stream]map[string][]storedEvent),
		replies: make(map[string][]string),
		ids:     make(map[string]struct{}),
	}
}

// Append stores a copy of event, keeping each stream ordered by OccurredAt
// with ties in append order.
func (l *EventLog) Append(ctx context.Context, event *events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event == nil || event.ID == "" || event.Key == "" {
		return fmt.Errorf("invalid event: id and key are required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.ids[event.ID]; seen {
		return fmt.Errorf("%w: %s", ErrDuplicateEvent, event.ID)
	}

	l.seq++
	stored := storedEvent{event: clone(event), seq: l.seq}

	byKey, ok := l.streams[event.Stream]
	if !ok {
		byKey = make(map[string][]storedEvent)
		l.streams[event.Stream] = byKey
	}

	stream := byKey[event.Key]
	// Insert after every event that did not occur later than this one.
	at := len(stream)
	for at > 0 && stream[at-1].event.OccurredAt.After(event.OccurredAt) {
		at--
	}
	byKey[event.Key] = slices.Insert(stream, at, stored)

	l.ids[event.ID] = struct{}{}

	if event.Stream == events.StreamPost && event.ReplyTo != "" &&
		!slices.Contains(l.replies[event.ReplyTo], event.Key) {
		l.replies[event.ReplyTo] = append(l.replies[event.ReplyTo], event.Key)
	}
	return nil
}

// ReadByKey returns copies of the stream's events, oldest first
func (l *EventLog) ReadByKey(ctx context.Context, stream events.Stream, key string) ([]*events.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return copies(l.streams[stream][key]), nil
}

// ReadByCorrelation returns copies of every reply stream of replyToPostID,
// merged oldest first with ties in append order
func (l *EventLog) ReadByCorrelation(ctx context.Context, replyToPostID string) ([]*events.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var merged []storedEvent
	for _, key := range l.replies[replyToPostID] {
		merged = append(merged, l.streams[events.StreamPost][key]...)
	}
	slices.SortFunc(merged, func(a, b storedEvent) int {
		return cmp.Or(a.event.OccurredAt.Compare(b.event.OccurredAt), cmp.Compare(a.seq, b.seq))
	})

	return copies(merged), nil
}

// Len returns the total number of stored events
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

func copies(stored []storedEvent) []*events.Event {
	out := make([]*events.Event, 0, len(stored))
	for i := range stored {
		e := clone(&stored[i].event)
		out = append(out, &e)
	}
	return out
}

func clone(e *events.Event) events.Event {
	c := *e
	c.Payload = slices.Clone(e.Payload)
	return c
}
