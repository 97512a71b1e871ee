package posts

import (
	"time"
)

// Post is the projected state of a post stream. It is derived on every read
// and never stored.
type Post struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"postId"`
	AuthorID  string    `json:"userId"`
	Content   string    `json:"content"`
	ReplyTo   string    `json:"replyToPostId,omitempty"` // parent post id for replies
}

// Reply is the result of a successful ReplyToPost
type Reply struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"replyPostId"`
	ParentID  string    `json:"replyToPostId"`
	AuthorID  string    `json:"userId"`
	Content   string    `json:"content"`
}

// PostView is a post as a reader sees it: projected state plus derived counts
// and, when a viewer is known, the viewer's own engagement.
type PostView struct {
	IsLikedByViewer    *bool `json:"isLikedByCurrentUser"`
	IsRepostedByViewer *bool `json:"isRepostedByCurrentUser"`
	Post
	LikeCount   int `json:"likeCount"`
	RepostCount int `json:"repostCount"`
	ReplyCount  int `json:"replyCount"`
}
