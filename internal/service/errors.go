package service

import "errors"

var (
	// ErrNotFound is returned when a record doesn't exist or belongs to
	// someone else. The two cases are never told apart.
	ErrNotFound = errors.New("not found")

	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfirmed       = errors.New("email not confirmed")

	// Input the handlers should answer with 422
	ErrNoFilter       = errors.New("at least one of name, surname or email is required")
	ErrNegativeWindow = errors.New("days can't be negative")
	ErrInvalidImage   = errors.New("file is not a valid image")
)
