package domain

import "errors"

// Common domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and user")
	ErrEmailTaken           = errors.New("email already registered")
	ErrSessionNotFound      = errors.New("session not found")
)
