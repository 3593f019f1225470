package services

import "errors"

// Failure taxonomy surfaced to the HTTP layer. Nothing below is retried;
// each call ends with exactly one of these or success.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNotificationFailed = errors.New("notification failed")
)
