package memory

import (
	"context"
	"sync"

	"Chirp/internal/core/users"
)

// UserRepo is a users.UserRepository kept in memory
type UserRepo struct {
	users map[string]users.User
	mu    sync.RWMutex
}

// NewUserRepository creates an empty user repository
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]users.User)}
}

func (r *UserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return nil, users.ErrUserAlreadyExists
	}
	r.users[user.ID] = *user

	created := *user
	return &created, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return &user, nil
}

func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}
