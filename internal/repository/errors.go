// Package repository provides PostgreSQL persistence for the task tracker.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateMembership is returned when an insert violates the
	// uniqueness of the (user, project) membership pair.
	ErrDuplicateMembership = errors.New("membership already exists")

	// ErrDuplicateUser is returned when an insert violates the username or
	// email uniqueness constraint.
	ErrDuplicateUser = errors.New("user already exists")
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
