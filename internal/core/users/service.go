package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"Chirp/internal/atproto/did"
)

// maxRegisterAttempts bounds retries on the (astronomically unlikely) event of
// a generated id colliding with an existing user.
const maxRegisterAttempts = 3

// IDGenerator mints new user ids
type IDGenerator interface {
	GenerateUserDID() (string, error)
}

type userService struct {
	userRepo  UserRepository
	generator IDGenerator
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, generator IDGenerator, logger *slog.Logger) UserService {
	if generator == nil {
		generator = did.NewGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo:  userRepo,
		generator: generator,
		logger:    logger,
	}
}

// Register creates a user with a freshly generated DID
func (s *userService) Register(ctx context.Context) (*User, error) {
	for attempt := 1; attempt <= maxRegisterAttempts; attempt++ {
		id, err := s.generator.GenerateUserDID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate user id: %w", err)
		}

		user, err := s.userRepo.Create(ctx, &User{
			ID:        id,
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		})
		if errors.Is(err, ErrUserAlreadyExists) {
			s.logger.Warn("generated user id collided", "user_id", id, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		s.logger.Info("user registered", "user_id", user.ID)
		return user, nil
	}
	return nil, fmt.Errorf("failed to register user after %d attempts: %w", maxRegisterAttempts, ErrUserAlreadyExists)
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id string) (*User, error) {
	if !did.ValidateDID(id) {
		return nil, &InvalidDIDError{DID: id}
	}
	return s.userRepo.GetByID(ctx, id)
}

// Exists reports whether id names a registered user
func (s *userService) Exists(ctx context.Context, id string) (bool, error) {
	if !did.ValidateDID(id) {
		return false, nil
	}
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user %s: %w", id, err)
	}
	return exists, nil
}
