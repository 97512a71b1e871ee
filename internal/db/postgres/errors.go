package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE for unique_violation
const uniqueViolation pq.ErrorCode = "23505"

// ErrDuplicateEvent is returned when an event id was already appended
var ErrDuplicateEvent = errors.New("duplicate event id")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
