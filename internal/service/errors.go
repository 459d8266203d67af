package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP
// status codes.
var (
	// ErrMissingDependency is returned by constructors given a nil collaborator.
	ErrMissingDependency = errors.New("missing service dependency")
)
