package repository

import "errors"

// Sentinel errors the service layer branches on. Anything else coming out
// of a repository is an internal store failure.
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)
