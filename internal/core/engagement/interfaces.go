package engagement

import "context"

// Service defines the like and repost commands.
// Every command checks the post first, then the user, then appends.
type Service interface {
	// LikePost appends a liked event. Liking twice is allowed; the fold absorbs it.
	LikePost(ctx context.Context, postID, userID string) (*Engagement, error)

	// UnlikePost appends an unliked event, or nothing if the user is not
	// currently liking the post.
	UnlikePost(ctx context.Context, postID, userID string) error

	// RepostPost appends a reposted event.
	RepostPost(ctx context.Context, postID, userID string) (*Engagement, error)

	// UnrepostPost appends an unreposted event, or nothing if the user is not
	// currently reposting the post.
	UnrepostPost(ctx context.Context, postID, userID string) error

	// Summary folds one engagement stream of a post.
	Summary(ctx context.Context, kind Kind, postID string, viewerID *string) (*View, error)
}

// PostChecker reports whether a post currently exists.
type PostChecker interface {
	Exists(ctx context.Context, postID string) (bool, error)
}

// UserChecker reports whether a user id belongs to a registered user.
type UserChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}
