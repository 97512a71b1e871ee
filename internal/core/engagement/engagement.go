package engagement

import (
	"context"
	"fmt"
	"time"

	"Chirp/internal/core/events"
	"Chirp/internal/core/failures"
)

// Engagement is the result of a successful like or repost.
type Engagement struct {
	At     time.Time `json:"at"`
	PostID string    `json:"postId"`
	UserID string    `json:"userId"`
	Kind   string    `json:"kind"`
}

// View is what a reader sees of one engagement stream.
// ViewerActive is nil when no viewer was supplied.
type View struct {
	ViewerActive *bool `json:"viewerActive"`
	Count        int   `json:"count"`
}

// Read folds the kind's stream for postID from log. It is shared by the
// engagement service and the post read path.
func Read(ctx context.Context, log events.Log, kind Kind, postID string, viewerID *string) (*View, error) {
	stream, err := log.ReadByKey(ctx, kind.Stream, postID)
	if err != nil {
		return nil, fmt.Errorf("read %s events: %w", kind.Name, failures.Store(err))
	}

	view := &View{Count: Project(kind, stream).ActiveCount}
	if viewerID != nil {
		active := StatusFor(kind, stream, *viewerID) == Active
		view.ViewerActive = &active
	}
	return view, nil
}
