package engagement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"Chirp/internal/core/events"
	"Chirp/internal/core/failures"
)

// engagementService implements the Service interface on top of an event log
type engagementService struct {
	log    events.Log
	posts  PostChecker
	users  UserChecker
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new engagement service instance
func NewService(log events.Log, posts PostChecker, users UserChecker, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &engagementService{
		log:    log,
		posts:  posts,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

func (s *engagementService) LikePost(ctx context.Context, postID, userID string) (*Engagement, error) {
	return s.engage(ctx, Likes, postID, userID)
}

func (s *engagementService) UnlikePost(ctx context.Context, postID, userID string) error {
	return s.disengage(ctx, Likes, postID, userID)
}

func (s *engagementService) RepostPost(ctx context.Context, postID, userID string) (*Engagement, error) {
	return s.engage(ctx, Reposts, postID, userID)
}

func (s *engagementService) UnrepostPost(ctx context.Context, postID, userID string) error {
	return s.disengage(ctx, Reposts, postID, userID)
}

func (s *engagementService) Summary(ctx context.Context, kind Kind, postID string, viewerID *string) (*View, error) {
	return Read(ctx, s.log, kind, postID, viewerID)
}

// engage appends the active event unconditionally once the post and user are known.
func (s *engagementService) engage(ctx context.Context, kind Kind, postID, userID string) (*Engagement, error) {
	if err := s.checkPreconditions(ctx, postID, userID); err != nil {
		return nil, err
	}

	event := events.NewEngagement(kind.Stream, kind.Active, postID, userID, s.now())
	if err := s.log.Append(ctx, event); err != nil {
		s.logger.Error("failed to append engagement event",
			"error", err,
			"kind", kind.Name,
			"post_id", postID,
			"user_id", userID)
		return nil, fmt.Errorf("append %s: %w", event.Type, failures.Store(err))
	}

	s.logger.Debug("engagement recorded",
		"kind", kind.Name,
		"post_id", postID,
		"user_id", userID,
		"event_id", event.ID)

	return &Engagement{
		PostID: postID,
		UserID: userID,
		Kind:   kind.Name,
		At:     event.OccurredAt,
	}, nil
}

// disengage appends the inactive event only when the user is currently active,
// so repeated unlike calls do not grow the log.
func (s *engagementService) disengage(ctx context.Context, kind Kind, postID, userID string) error {
	if err := s.checkPreconditions(ctx, postID, userID); err != nil {
		return err
	}

	stream, err := s.log.ReadByKey(ctx, kind.Stream, postID)
	if err != nil {
		return fmt.Errorf("read %s events: %w", kind.Name, failures.Store(err))
	}
	if StatusFor(kind, stream, userID) == Inactive {
		s.logger.Debug("engagement already inactive",
			"kind", kind.Name,
			"post_id", postID,
			"user_id", userID)
		return nil
	}

	event := events.NewEngagement(kind.Stream, kind.Inactive, postID, userID, s.now())
	if err := s.log.Append(ctx, event); err != nil {
		s.logger.Error("failed to append engagement event",
			"error", err,
			"kind", kind.Name,
			"post_id", postID,
			"user_id", userID)
		return fmt.Errorf("append %s: %w", event.Type, failures.Store(err))
	}
	return nil
}

// checkPreconditions runs the post check before the user check so a deleted
// post always reports PostNotFound.
func (s *engagementService) checkPreconditions(ctx context.Context, postID, userID string) error {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return ErrPostNotFound
	}

	exists, err = s.users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", failures.Store(err))
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
