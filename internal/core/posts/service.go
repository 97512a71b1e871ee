package posts

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"

	"Chirp/internal/core/content"
	"Chirp/internal/core/engagement"
	"Chirp/internal/core/events"
	"Chirp/internal/core/failures"
)

const (
	defaultReplyLimit = 50
	maxReplyLimit     = 100
)

type postService struct {
	log    events.Log
	users  UserChecker
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewPostService creates a new post service backed by an event log
func NewPostService(log events.Log, users UserChecker, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		log:    log,
		users:  users,
		logger: logger,
		now:    time.Now,
		newID:  events.NewPostID,
	}
}

// CreatePost creates a new top-level post
// Flow: validate content -> check author -> append post_created
func (s *postService) CreatePost(ctx context.Context, authorID, rawContent string) (*Post, error) {
	valid, ok := content.Validate(rawContent)
	if !ok {
		return nil, ErrInvalidContent
	}
	if err := s.checkAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	postID := s.newID()
	event := events.NewPostCreated(postID, authorID, valid.String(), s.now())
	if err := s.append(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("post created", "post_id", postID, "author_id", authorID)

	return &Post{
		ID:        postID,
		AuthorID:  authorID,
		Content:   valid.String(),
		CreatedAt: event.OccurredAt,
	}, nil
}

// DeletePost deletes a post on behalf of its author
// Flow: project post -> check ownership -> append post_deleted
func (s *postService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, exists, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if post.AuthorID != requesterID {
		s.logger.Warn("delete rejected: requester is not the author",
			"post_id", postID,
			"requester_id", requesterID)
		return ErrForbidden
	}

	if err := s.append(ctx, events.NewPostDeleted(postID, requesterID, s.now())); err != nil {
		return err
	}

	s.logger.Info("post deleted", "post_id", postID, "deleted_by", requesterID)
	return nil
}

// ReplyToPost creates a reply to an existing post
// Flow: validate content -> check author -> project parent -> append post_created with replyTo
func (s *postService) ReplyToPost(ctx context.Context, parentPostID, authorID, rawContent string) (*Reply, error) {
	valid, ok := content.Validate(rawContent)
	if !ok {
		return nil, ErrInvalidContent
	}
	if err := s.checkAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	_, exists, err := s.load(ctx, parentPostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrParentNotFound
	}

	replyID := s.newID()
	event := events.NewReplyCreated(replyID, parentPostID, authorID, valid.String(), s.now())
	if err := s.append(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info("reply created",
		"post_id", replyID,
		"parent_post_id", parentPostID,
		"author_id", authorID)

	return &Reply{
		ID:        replyID,
		ParentID:  parentPostID,
		AuthorID:  authorID,
		Content:   valid.String(),
		CreatedAt: event.OccurredAt,
	}, nil
}

// GetPost projects a post and folds its like, repost and reply streams
func (s *postService) GetPost(ctx context.Context, postID string, viewerID *string) (*PostView, error) {
	post, exists, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	likes, err := engagement.Read(ctx, s.log, engagement.Likes, postID, viewerID)
	if err != nil {
		return nil, err
	}
	reposts, err := engagement.Read(ctx, s.log, engagement.Reposts, postID, viewerID)
	if err != nil {
		return nil, err
	}
	replies, err := s.replies(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostView{
		Post:               post,
		LikeCount:          likes.Count,
		RepostCount:        reposts.Count,
		ReplyCount:         len(replies),
		IsLikedByViewer:    likes.ViewerActive,
		IsRepostedByViewer: reposts.ViewerActive,
	}, nil
}

// ListReplies returns one page of the existing replies to a post
func (s *postService) ListReplies(ctx context.Context, postID string, limit, offset int) ([]*Post, error) {
	_, exists, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if limit <= 0 {
		limit = defaultReplyLimit
	}
	if limit > maxReplyLimit {
		limit = maxReplyLimit
	}
	if offset < 0 {
		offset = 0
	}

	replies, err := s.replies(ctx, postID)
	if err != nil {
		return nil, err
	}
	return lo.Slice(replies, offset, offset+limit), nil
}

// Exists reports whether a post currently exists
func (s *postService) Exists(ctx context.Context, postID string) (bool, error) {
	_, exists, err := s.load(ctx, postID)
	return exists, err
}

// load reads and folds a post stream
func (s *postService) load(ctx context.Context, postID string) (Post, bool, error) {
	stream, err := s.log.ReadByKey(ctx, events.StreamPost, postID)
	if err != nil {
		s.logger.Error("failed to read post events", "error", err, "post_id", postID)
		return Post{}, false, fmt.Errorf("read post %s: %w", postID, failures.Store(err))
	}
	post, exists := Project(stream)
	return post, exists, nil
}

// replies folds every correlated stream and keeps the replies that still exist,
// ordered by creation time then id
func (s *postService) replies(ctx context.Context, parentPostID string) ([]*Post, error) {
	stream, err := s.log.ReadByCorrelation(ctx, parentPostID)
	if err != nil {
		s.logger.Error("failed to read replies", "error", err, "post_id", parentPostID)
		return nil, fmt.Errorf("read replies of %s: %w", parentPostID, failures.Store(err))
	}

	var replies []*Post
	for _, replyStream := range lo.GroupBy(stream, func(e *events.Event) string { return e.Key }) {
		reply, exists := Project(replyStream)
		if !exists || reply.ReplyTo != parentPostID {
			continue
		}
		replies = append(replies, &reply)
	}

	slices.SortFunc(replies, func(a, b *Post) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return replies, nil
}

func (s *postService) checkAuthor(ctx context.Context, authorID string) error {
	exists, err := s.users.Exists(ctx, authorID)
	if err != nil {
		return fmt.Errorf("check author: %w", failures.Store(err))
	}
	if !exists {
		return ErrAuthorNotFound
	}
	return nil
}

func (s *postService) append(ctx context.Context, event *events.Event) error {
	if err := s.log.Append(ctx, event); err != nil {
		s.logger.Error("failed to append post event",
			"error", err,
			"post_id", event.Key,
			"event_type", event.Type)
		return fmt.Errorf("append %s: %w", event.Type, failures.Store(err))
	}
	return nil
}
