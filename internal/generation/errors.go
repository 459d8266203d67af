package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the generation package
var (
	// ErrProviderCallFailed is returned when a single provider round trip fails
	// (network error, timeout, non-success status or malformed response).
	ErrProviderCallFailed = errors.New("provider call failed")

	// ErrExhaustedRetries is matched by *ExhaustedRetriesError.
	ErrExhaustedRetries = errors.New("retries exhausted")

	// ErrVisionAnalysisFailed is returned when both vision models fail. It is
	// never fatal to a request.
	ErrVisionAnalysisFailed = errors.New("image analysis failed")

	// ErrPromptGenerationFailed is returned when neither the primary nor the
	// fallback provider could build the photographic prompt.
	ErrPromptGenerationFailed = errors.New("prompt generation failed")

	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from provider")

	// ErrContentBlocked is returned when the provider blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by provider safety filters")

	// ErrInvalidConfig is returned when a provider or stage configuration is invalid
	ErrInvalidConfig = errors.New("invalid generation configuration")

	// ErrProviderNotConfigured is returned when a provider has no credential.
	ErrProviderNotConfigured = errors.New("provider not configured")
)

// AttemptError records one failed attempt of a retried operation.
type AttemptError struct {
	Attempt int    `json:"attempt"`
	Message string `json:"message"`
}

// ExhaustedRetriesError is returned by ExecuteWithRetry when every attempt
// failed. errors.Unwrap yields the last underlying error.
type ExhaustedRetriesError struct {
	Operation string
	Attempts  int
	Log       []AttemptError
	Last      error
}

// Error implements the error interface.
func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts: %v", e.Operation, ErrExhaustedRetries, e.Attempts, e.Last)
}

// Unwrap returns the last underlying error.
func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Last
}

// Is reports whether target is ErrExhaustedRetries.
func (e *ExhaustedRetriesError) Is(target error) bool {
	return target == ErrExhaustedRetries
}

// Summary joins the attempt log into a single line for logging.
func (e *ExhaustedRetriesError) Summary() string {
	parts := make([]string, 0, len(e.Log))
	for _, a := range e.Log {
		parts = append(parts, fmt.Sprintf("#%d: %s", a.Attempt, a.Message))
	}
	return strings.Join(parts, "; ")
}
