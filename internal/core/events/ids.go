package events

import (
	"github.com/bluesky-social/indigo/atproto/syntax"
	"github.com/google/uuid"
)

// postIDClock hands out strictly increasing TIDs, so two posts created in the
// same microsecond still get distinct ids.
var postIDClock = syntax.NewTIDClock(0)

// NewEventID returns a globally unique, opaque event id.
func NewEventID() string {
	return uuid.NewString()
}

// NewPostID returns a new post id. Post ids are TIDs: sortable by creation
// time, like atProto record keys.
func NewPostID() string {
	return postIDClock.Next().String()
}

// ValidPostID reports whether id has the shape of a post id.
func ValidPostID(id string) bool {
	_, err := syntax.ParseTID(id)
	return err == nil
}
