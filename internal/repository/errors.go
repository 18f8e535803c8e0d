package repository

import "errors"

var (
	// ErrNotFound is returned when no record exists for the given id
	// or lookup value.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when an insert violates the unique
	// email index on the users collection.
	ErrDuplicateEmail = errors.New("email already exists")
)
