package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Chirp/internal/core/engagement"
	"Chirp/internal/core/events"
	"Chirp/internal/core/posts"
)

// testPostID returns a post id no other test run will reuse
func testPostID(t *testing.T) string {
	t.Helper()
	return events.NewPostID()
}

func TestEventLog_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	postID := testPostID(t)
	created := events.NewPostCreated(postID, "did:plc:testalice", "hello", time.Now())
	require.NoError(t, log.Append(ctx, created))

	got, err := log.ReadByKey(ctx, events.StreamPost, postID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, created.ID, got[0].ID)
	assert.Equal(t, created.Key, got[0].Key)
	assert.Equal(t, created.Stream, got[0].Stream)
	assert.Equal(t, created.Type, got[0].Type)
	assert.Empty(t, got[0].ReplyTo)
	assert.True(t, created.OccurredAt.Equal(got[0].OccurredAt))
	// JSONB normalises whitespace and key order, not content.
	assert.JSONEq(t, string(created.Payload), string(got[0].Payload))

	want, _ := posts.Project([]*events.Event{created})
	projected, exists := posts.Project(got)
	require.True(t, exists)
	assert.Equal(t, want, projected)
}

func TestEventLog_Ordering(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	postID := testPostID(t)
	now := time.Now()

	second := events.NewEngagement(events.StreamLike, events.TypeUnliked, postID, "did:plc:testbob", now.Add(time.Second))
	first := events.NewEngagement(events.StreamLike, events.TypeLiked, postID, "did:plc:testbob", now)
	tie := events.NewEngagement(events.StreamLike, events.TypeLiked, postID, "did:plc:testbob", now.Add(time.Second))

	require.NoError(t, log.Append(ctx, second))
	require.NoError(t, log.Append(ctx, first))
	require.NoError(t, log.Append(ctx, tie))

	got, err := log.ReadByKey(ctx, events.StreamLike, postID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID, "ties are read in insertion order")
	assert.Equal(t, tie.ID, got[2].ID)

	assert.Equal(t, engagement.Active, engagement.StatusFor(engagement.Likes, got, "did:plc:testbob"))

	reposts, err := log.ReadByKey(ctx, events.StreamRepost, postID)
	require.NoError(t, err)
	assert.Empty(t, reposts)
}

func TestEventLog_DuplicateEventID(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	e := events.NewPostCreated(testPostID(t), "did:plc:testalice", "hello", time.Now())
	require.NoError(t, log.Append(ctx, e))
	assert.ErrorIs(t, log.Append(ctx, e), ErrDuplicateEvent)
}

func TestEventLog_UnknownStream(t *testing.T) {
	log := NewEventLog(nil)
	ctx := context.Background()

	err := log.Append(ctx, &events.Event{ID: "x", Stream: "bookmark", Key: "p"})
	assert.Error(t, err)

	_, err = log.ReadByKey(ctx, "bookmark", "p")
	assert.Error(t, err)
}

func TestEventLog_ReadByCorrelation(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()
	now := time.Now()

	parentID := testPostID(t)
	replyA := testPostID(t)
	replyB := testPostID(t)

	appended := []*events.Event{
		events.NewPostCreated(parentID, "did:plc:testalice", "root", now),
		events.NewReplyCreated(replyA, parentID, "did:plc:testbob", "a", now.Add(time.Second)),
		events.NewReplyCreated(replyB, parentID, "did:plc:testcarol", "b", now.Add(2*time.Second)),
		events.NewPostDeleted(replyA, "did:plc:testbob", now.Add(3*time.Second)),
	}
	for _, e := range appended {
		require.NoError(t, log.Append(ctx, e))
	}

	got, err := log.ReadByCorrelation(ctx, parentID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, appended[1].ID, got[0].ID)
	assert.Equal(t, parentID, got[0].ReplyTo)
	assert.Equal(t, appended[2].ID, got[1].ID)
	assert.Equal(t, appended[3].ID, got[2].ID)
	assert.Empty(t, got[2].ReplyTo)
}
