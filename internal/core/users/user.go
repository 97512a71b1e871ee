package users

import (
	"time"
)

// User is a registered account. Only the id matters to the feed; everything
// else about a person lives outside this service.
type User struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"userId" db:"id"`
}
