package posts

import "context"

// Service defines the post commands and the post read path
type Service interface {
	// CreatePost validates content, checks the author and appends post_created
	// under a new post id.
	CreatePost(ctx context.Context, authorID, rawContent string) (*Post, error)

	// DeletePost appends post_deleted. Only the author may delete, and deleting
	// a post that does not exist (or no longer exists) is ErrNotFound.
	DeletePost(ctx context.Context, postID, requesterID string) error

	// ReplyToPost creates a new post correlated to parentPostID. Nothing is
	// appended to the parent's own stream.
	ReplyToPost(ctx context.Context, parentPostID, authorID, rawContent string) (*Reply, error)

	// GetPost projects a post with its engagement counts. Viewer flags are nil
	// when viewerID is nil.
	GetPost(ctx context.Context, postID string, viewerID *string) (*PostView, error)

	// ListReplies returns the replies of a post that still exist, oldest first.
	ListReplies(ctx context.Context, postID string, limit, offset int) ([]*Post, error)

	// Exists reports whether a post currently exists.
	Exists(ctx context.Context, postID string) (bool, error)
}

// UserChecker reports whether a user id belongs to a registered user
type UserChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}
