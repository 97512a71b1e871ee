package engagement

import "Chirp/internal/core/failures"

var (
	// ErrPostNotFound is returned when the target post does not currently exist
	ErrPostNotFound = failures.New(failures.KindNotFound, "PostNotFound", "post not found")

	// ErrUserNotFound is returned when the acting user is unknown
	ErrUserNotFound = failures.New(failures.KindValidation, "UserNotFound", "user not found")
)
