package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested status no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrEmptyStatusID indicates a lookup was attempted without an ID.
	ErrEmptyStatusID = errors.New("status id cannot be empty")
)
