package engagement

import (
	"encoding/json"
	"slices"

	"github.com/samber/lo"

	"Chirp/internal/core/events"
)

// Kind describes one engagement stream: which log it lives in and which event
// types switch a user on and off.
type Kind struct {
	Name     string
	Stream   events.Stream
	Active   events.Type
	Inactive events.Type
}

var (
	// Likes is the like/unlike stream.
	Likes = Kind{Name: "like", Stream: events.StreamLike, Active: events.TypeLiked, Inactive: events.TypeUnliked}
	// Reposts is the repost/unrepost stream.
	Reposts = Kind{Name: "repost", Stream: events.StreamRepost, Active: events.TypeReposted, Inactive: events.TypeUnreposted}
)

// Status is a single user's last known engagement state on a post.
type Status int

const (
	Inactive Status = iota
	Active
)

func (s Status) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Summary is the folded membership of one engagement stream.
type Summary struct {
	ActiveUserIDs []string // sorted
	ActiveCount   int
}

// Contains reports whether userID is currently active.
func (s Summary) Contains(userID string) bool {
	_, found := slices.BinarySearch(s.ActiveUserIDs, userID)
	return found
}

// Project folds an ordered engagement stream. The last event per user decides
// that user's status, so duplicate toggles and replays do not change the result.
func Project(kind Kind, stream []*events.Event) Summary {
	statuses := make(map[string]Status)
	for _, e := range stream {
		userID, status, ok := kind.decode(e)
		if !ok {
			continue
		}
		statuses[userID] = status
	}

	active := lo.Keys(lo.PickByValues(statuses, []Status{Active}))
	slices.Sort(active)

	return Summary{
		ActiveUserIDs: active,
		ActiveCount:   len(active),
	}
}

// StatusFor folds the stream restricted to userID.
func StatusFor(kind Kind, stream []*events.Event, userID string) Status {
	status := Inactive
	for _, e := range stream {
		who, next, ok := kind.decode(e)
		if !ok || who != userID {
			continue
		}
		status = next
	}
	return status
}

// decode returns the actor and resulting status of e, or ok == false when e
// is not a well-formed event of this kind.
func (k Kind) decode(e *events.Event) (string, Status, bool) {
	if e == nil || e.Stream != k.Stream {
		return "", Inactive, false
	}

	var status Status
	switch e.Type {
	case k.Active:
		status = Active
	case k.Inactive:
		status = Inactive
	default:
		return "", Inactive, false
	}

	var payload events.EngagementPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil || payload.UserID == "" {
		return "", Inactive, false
	}
	return payload.UserID, status, true
}
