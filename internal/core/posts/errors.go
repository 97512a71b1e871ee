package posts

import "Chirp/internal/core/failures"

// Sentinel errors for post commands. Each one carries its failure kind, so the
// HTTP layer can map them without knowing about this package.
var (
	// ErrInvalidContent is returned when content is blank or longer than 280 characters
	ErrInvalidContent = failures.New(failures.KindValidation, "InvalidContent",
		"content must be between 1 and 280 characters and not blank")

	// ErrAuthorNotFound is returned when the author id does not belong to a registered user
	ErrAuthorNotFound = failures.New(failures.KindValidation, "AuthorNotFound", "author not found")

	// ErrNotFound is returned when a post does not currently exist
	ErrNotFound = failures.New(failures.KindNotFound, "NotFound", "post not found")

	// ErrForbidden is returned when someone other than the author tries to delete a post
	ErrForbidden = failures.New(failures.KindForbidden, "Forbidden", "only the author can delete a post")

	// ErrParentNotFound is returned when replying to a post that does not currently exist
	ErrParentNotFound = failures.New(failures.KindNotFound, "ParentNotFound", "parent post not found")
)
