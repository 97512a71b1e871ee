package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a duplicate id.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID returns ErrUserNotFound when no user has the id.
	GetByID(ctx context.Context, id string) (*User, error)

	// Exists reports whether a user with the id is stored.
	Exists(ctx context.Context, id string) (bool, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	// Register mints a new user id and stores the user.
	Register(ctx context.Context) (*User, error)

	GetUser(ctx context.Context, id string) (*User, error)

	// Exists is the predicate the post and engagement commands consume.
	// Malformed ids are reported as not existing.
	Exists(ctx context.Context, id string) (bool, error)
}
