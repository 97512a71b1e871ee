package events

import (
	"encoding/json"
	"time"
)

// Stream names one of the three event logs. Every stream is keyed by postId.
type Stream string

const (
	StreamPost   Stream = "post"
	StreamLike   Stream = "like"
	StreamRepost Stream = "repost"
)

// Type is the event type tag stored alongside the payload.
type Type string

const (
	TypePostCreated Type = "post_created"
	TypePostDeleted Type = "post_deleted"
	TypeLiked       Type = "liked"
	TypeUnliked     Type = "unliked"
	TypeReposted    Type = "reposted"
	TypeUnreposted  Type = "unreposted"
)

// Event is an immutable record of a single state change.
// Events are created only by command handlers and never mutated after append.
type Event struct {
	OccurredAt time.Time       `json:"occurredAt"`
	ID         string          `json:"eventId"`
	Stream     Stream          `json:"stream"`
	Key        string          `json:"entityKey"`
	Type       Type            `json:"eventType"`
	ReplyTo    string          `json:"replyToPostId,omitempty"` // set on reply post_created events only
	Payload    json.RawMessage `json:"payload"`
}

// PostCreatedPayload is the payload of a post_created event.
type PostCreatedPayload struct {
	AuthorID string `json:"authorId"`
	Content  string `json:"content"`
}

// PostDeletedPayload is the payload of a post_deleted event.
type PostDeletedPayload struct {
	DeletedBy string `json:"deletedBy"`
}

// EngagementPayload is the payload of liked/unliked/reposted/unreposted events.
type EngagementPayload struct {
	UserID string `json:"userId"`
}

// NewPostCreated builds the creation event for a top-level post.
func NewPostCreated(postID, authorID, content string, at time.Time) *Event {
	return newEvent(StreamPost, postID, TypePostCreated, "", PostCreatedPayload{
		AuthorID: authorID,
		Content:  content,
	}, at)
}

// NewReplyCreated builds the creation event for a reply. The event lives in
// the reply's own stream; the parent stream is never touched.
func NewReplyCreated(replyID, parentID, authorID, content string, at time.Time) *Event {
	return newEvent(StreamPost, replyID, TypePostCreated, parentID, PostCreatedPayload{
		AuthorID: authorID,
		Content:  content,
	}, at)
}

// NewPostDeleted builds a post_deleted event.
func NewPostDeleted(postID, deletedBy string, at time.Time) *Event {
	return newEvent(StreamPost, postID, TypePostDeleted, "", PostDeletedPayload{
		DeletedBy: deletedBy,
	}, at)
}

// NewEngagement builds a like or repost toggle event for userID on postID.
func NewEngagement(stream Stream, typ Type, postID, userID string, at time.Time) *Event {
	return newEvent(stream, postID, typ, "", EngagementPayload{UserID: userID}, at)
}

func newEvent(stream Stream, key string, typ Type, replyTo string, payload any, at time.Time) *Event {
	data, err := json.Marshal(payload)
	if err != nil {
		// Payloads are flat string structs; a marshal failure is a defect.
		panic("events: cannot marshal payload: " + err.Error())
	}
	return &Event{
		ID:         NewEventID(),
		Stream:     stream,
		Key:        key,
		Type:       typ,
		ReplyTo:    replyTo,
		Payload:    data,
		OccurredAt: Timestamp(at),
	}
}

// Timestamp normalises t to the precision the event log stores (microseconds, UTC)
// so that an event read back from storage equals the event that was appended.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
