package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when a generated id collides with a stored user
	ErrUserAlreadyExists = errors.New("user already exists")
)

// InvalidDIDError is returned when a user id is not a valid DID
type InvalidDIDError struct {
	DID string
}

func (e *InvalidDIDError) Error() string {
	return fmt.Sprintf("invalid DID %q", e.DID)
}
