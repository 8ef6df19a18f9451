package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrEmptyUsername   = errors.New("username is empty")
	ErrUsernameTooLong = errors.New("username is longer than 20 characters")
	ErrUsernameTaken   = errors.New("username is bound to a different device")
	ErrPlayerNotFound  = errors.New("player not found")

	// Flip errors
	ErrFlipInProgress = errors.New("a flip is already in progress for this player")
	ErrInvalidResult  = errors.New("invalid flip result")

	// Persistence errors
	ErrPersistence = errors.New("persistence failure")
)
