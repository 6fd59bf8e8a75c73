package domain

import "errors"

// Resume aggregate errors
var (
	ErrResumeNotFound = errors.New("resume not found")
	ErrForbidden      = errors.New("caller does not own this resume")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)
