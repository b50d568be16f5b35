package db

import "errors"

var (
	// requested record does not exist (for the requesting account).
	ErrMissing = errors.New("missing")

	// records are found more than expected.
	ErrTooMuch = errors.New("too much")

	// a record claiming the same identity already exists.
	ErrConflict = errors.New("conflict")

	// given attributes cannot make a valid account.
	ErrInvalidUser = errors.New("invalid user")
)
