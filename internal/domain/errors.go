package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyIdea is returned when a generation request carries no idea text.
	ErrEmptyIdea = errors.New("idea cannot be empty")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrImageTooLarge is returned when an attached image exceeds the accepted size.
	ErrImageTooLarge = errors.New("image exceeds maximum size")
)
