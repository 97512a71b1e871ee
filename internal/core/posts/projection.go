package posts

import (
	"encoding/json"

	"Chirp/internal/atproto/did"
	"Chirp/internal/core/events"
)

// createdPayload mirrors events.PostCreatedPayload with pointer fields, so a
// missing field can be told apart from an empty one.
type createdPayload struct {
	AuthorID *string `json:"authorId"`
	Content  *string `json:"content"`
}

// Project folds an ordered post stream into the current post.
//
// post_created replaces the accumulator, post_deleted clears it, and any other
// event is ignored. A post_created whose payload is malformed is ignored as well,
// so readers never see a half-formed post. The bool is false when the post does
// not exist.
func Project(stream []*events.Event) (Post, bool) {
	var (
		current Post
		exists  bool
	)

	for _, e := range stream {
		if e == nil || e.Stream != events.StreamPost {
			continue
		}
		switch e.Type {
		case events.TypePostCreated:
			post, ok := decodeCreated(e)
			if !ok {
				continue
			}
			current, exists = post, true
		case events.TypePostDeleted:
			current, exists = Post{}, false
		}
	}

	return current, exists
}

func decodeCreated(e *events.Event) (Post, bool) {
	var payload createdPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return Post{}, false
	}
	if payload.AuthorID == nil || payload.Content == nil {
		return Post{}, false
	}
	if !did.ValidateDID(*payload.AuthorID) {
		return Post{}, false
	}

	return Post{
		ID:        e.Key,
		AuthorID:  *payload.AuthorID,
		Content:   *payload.Content,
		CreatedAt: e.OccurredAt,
		ReplyTo:   e.ReplyTo,
	}, true
}
