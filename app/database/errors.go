package database

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised when an insert hits a
// unique constraint or index.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint failure,
// optionally on a specific constraint name. Callers use this to separate
// "row already exists" races from real write failures.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
