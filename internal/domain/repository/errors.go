package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the given id or key
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique key is already taken
	ErrConflict = errors.New("record already exists")
)
