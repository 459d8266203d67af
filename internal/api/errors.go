package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/redact"
	"github.com/phrazzld/promptchain/internal/service"
	"github.com/phrazzld/promptchain/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. This prevents leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrEmptyUpdate),
		errors.As(err, &validationErrs),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrFavoriteNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Provider content policy
	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	// Generation mode not available with the configured keys
	case errors.Is(err, service.ErrGeneratorUnavailable),
		errors.Is(err, generation.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable

	// Upstream provider failures
	case errors.Is(err, generation.ErrPromptGenerationFailed),
		errors.Is(err, generation.ErrExhaustedRetries),
		errors.Is(err, generation.ErrProviderCallFailed),
		errors.Is(err, generation.ErrEmptyResponse):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Provider failures include the redacted failure chain so
// the caller can see why generation failed; credentials and raw provider
// payloads never reach these messages.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"

	case errors.Is(err, domain.ErrEmptyIdea):
		return "Idea cannot be empty"

	case errors.Is(err, domain.ErrImageTooLarge):
		return "Image exceeds maximum size"

	case errors.Is(err, domain.ErrEmptyFavoriteTitle):
		return "Title cannot be empty"

	case errors.Is(err, domain.ErrEmptyFavoritePrompt):
		return "Primary prompt cannot be empty"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, service.ErrEmptyUpdate):
		return "Update contains no fields"

	case errors.Is(err, service.ErrEmptyQuery):
		return "Search query cannot be empty"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, service.ErrFavoriteNotFound), errors.Is(err, store.ErrNotFound):
		return "Favorite not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Favorite already exists"

	case errors.Is(err, generation.ErrContentBlocked):
		return "Content blocked by provider safety filters"

	case errors.Is(err, service.ErrGeneratorUnavailable),
		errors.Is(err, generation.ErrProviderNotConfigured):
		return "Generator not configured: missing provider API key"

	case errors.Is(err, generation.ErrPromptGenerationFailed),
		errors.Is(err, generation.ErrExhaustedRetries),
		errors.Is(err, generation.ErrProviderCallFailed),
		errors.Is(err, generation.ErrEmptyResponse):
		return "Prompt generation failed: " + providerFailureDetail(err)

	case errors.Is(err, store.ErrStorage):
		return "Favorites storage is unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// providerFailureDetail renders the last underlying provider error. Provider
// clients only build errors from status codes and sentinel text, and the
// message is redacted once more before it leaves the service.
const maxFailureDetailRunes = 300

func providerFailureDetail(err error) string {
	msg := redact.Error(err)
	msg = strings.TrimPrefix(msg, generation.ErrPromptGenerationFailed.Error()+": ")
	if r := []rune(msg); len(r) > maxFailureDetailRunes {
		msg = string(r[:maxFailureDetailRunes]) + "..."
	}
	return msg
}

// SanitizeValidationError turns validator errors into a short message naming
// the first invalid field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "dive":
		return "invalid entry"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and sanitized message for err. A non-empty
// userMessage overrides the sanitized message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}
