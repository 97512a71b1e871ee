package posts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Chirp/internal/core/events"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func rawEvent(typ events.Type, key, payload string, at time.Time) *events.Event {
	return &events.Event{
		ID:         events.NewEventID(),
		Stream:     events.StreamPost,
		Key:        key,
		Type:       typ,
		Payload:    json.RawMessage(payload),
		OccurredAt: at,
	}
}

func TestProject_Empty(t *testing.T) {
	_, exists := Project(nil)
	assert.False(t, exists)
}

func TestProject_Created(t *testing.T) {
	post, exists := Project([]*events.Event{
		events.NewPostCreated("p1", "did:plc:alice", "hello", t0),
	})

	require.True(t, exists)
	assert.Equal(t, Post{ID: "p1", AuthorID: "did:plc:alice", Content: "hello", CreatedAt: t0}, post)
}

func TestProject_Reply(t *testing.T) {
	post, exists := Project([]*events.Event{
		events.NewReplyCreated("r1", "p1", "did:plc:bob", "hi", t0),
	})

	require.True(t, exists)
	assert.Equal(t, "p1", post.ReplyTo)
}

func TestProject_Deleted(t *testing.T) {
	_, exists := Project([]*events.Event{
		events.NewPostCreated("p1", "did:plc:alice", "hello", t0),
		events.NewPostDeleted("p1", "did:plc:alice", t0.Add(time.Second)),
	})
	assert.False(t, exists)
}

func TestProject_DeleteWithoutCreate(t *testing.T) {
	_, exists := Project([]*events.Event{
		events.NewPostDeleted("p1", "did:plc:alice", t0),
	})
	assert.False(t, exists)
}

func TestProject_RecreatedAfterDelete(t *testing.T) {
	post, exists := Project([]*events.Event{
		events.NewPostCreated("p1", "did:plc:alice", "first", t0),
		events.NewPostDeleted("p1", "did:plc:alice", t0.Add(time.Second)),
		events.NewPostCreated("p1", "did:plc:alice", "second", t0.Add(2*time.Second)),
	})

	require.True(t, exists)
	assert.Equal(t, "second", post.Content)
	assert.Equal(t, t0.Add(2*time.Second), post.CreatedAt)
}

func TestProject_LaterCreateOverwrites(t *testing.T) {
	post, exists := Project([]*events.Event{
		events.NewPostCreated("p1", "did:plc:alice", "first", t0),
		events.NewPostCreated("p1", "did:plc:bob", "second", t0.Add(time.Second)),
	})

	require.True(t, exists)
	assert.Equal(t, "did:plc:bob", post.AuthorID)
	assert.Equal(t, "second", post.Content)
}

func TestProject_MalformedCreateIsIgnored(t *testing.T) {
	valid := events.NewPostCreated("p1", "did:plc:alice", "hello", t0)
	want, _ := Project([]*events.Event{valid})

	malformed := map[string]string{
		"not json":          `{"authorId":`,
		"missing author":    `{"content":"x"}`,
		"missing content":   `{"authorId":"did:plc:bob"}`,
		"null author":       `{"authorId":null,"content":"x"}`,
		"numeric author":    `{"authorId":42,"content":"x"}`,
		"numeric content":   `{"authorId":"did:plc:bob","content":7}`,
		"author not an id":  `{"authorId":"bob","content":"x"}`,
		"payload is array":  `["did:plc:bob","x"]`,
		"empty payload":     ``,
		"empty author":      `{"authorId":"","content":"x"}`,
		"author wrong type": `{"authorId":{"did":"did:plc:bob"},"content":"x"}`,
	}

	for name, payload := range malformed {
		t.Run(name, func(t *testing.T) {
			bad := rawEvent(events.TypePostCreated, "p1", payload, t0.Add(time.Second))

			alone, exists := Project([]*events.Event{bad})
			assert.False(t, exists)
			assert.Equal(t, Post{}, alone)

			after, exists := Project([]*events.Event{valid, bad})
			require.True(t, exists)
			assert.Equal(t, want, after)
		})
	}
}

func TestProject_UnknownEventsAreNoOps(t *testing.T) {
	streams := map[string][]*events.Event{
		"empty":   nil,
		"created": {events.NewPostCreated("p1", "did:plc:alice", "hello", t0)},
		"deleted": {
			events.NewPostCreated("p1", "did:plc:alice", "hello", t0),
			events.NewPostDeleted("p1", "did:plc:alice", t0.Add(time.Second)),
		},
	}
	noise := []*events.Event{
		rawEvent("post_edited", "p1", `{"content":"edited"}`, t0.Add(2*time.Second)),
		rawEvent("", "p1", `{}`, t0.Add(2*time.Second)),
		events.NewEngagement(events.StreamLike, events.TypeLiked, "p1", "did:plc:bob", t0.Add(2*time.Second)),
		nil,
	}

	for name, stream := range streams {
		want, wantExists := Project(stream)
		for _, extra := range noise {
			got, gotExists := Project(append(append([]*events.Event{}, stream...), extra))
			assert.Equal(t, wantExists, gotExists, name)
			assert.Equal(t, want, got, name)
		}
	}
}

func TestProject_Deterministic(t *testing.T) {
	stream := []*events.Event{
		events.NewPostCreated("p1", "did:plc:alice", "hello", t0),
		events.NewPostDeleted("p1", "did:plc:alice", t0.Add(time.Second)),
		events.NewPostCreated("p1", "did:plc:alice", "again", t0.Add(2*time.Second)),
	}

	first, firstExists := Project(stream)
	second, secondExists := Project(stream)
	assert.Equal(t, firstExists, secondExists)
	assert.Equal(t, first, second)
}
