package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/service"
	"github.com/phrazzld/promptchain/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty idea", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyIdea), http.StatusBadRequest},
		{"invalid json", fmt.Errorf("%w: eof", shared.ErrInvalidJSON), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"favorite not found", service.NewFavoriteServiceError("get_favorite", "lookup", store.ErrFavoriteNotFound), http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"content blocked", fmt.Errorf("%w: %w", generation.ErrPromptGenerationFailed, generation.ErrContentBlocked), http.StatusUnprocessableEntity},
		{"generator unavailable", service.ErrGeneratorUnavailable, http.StatusServiceUnavailable},
		{"generation failed", fmt.Errorf("%w: %w", generation.ErrPromptGenerationFailed, generation.ErrProviderCallFailed), http.StatusBadGateway},
		{"storage", store.ErrStorage, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Idea cannot be empty",
		GetSafeErrorMessage(fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrEmptyIdea)))
	assert.Equal(t, "Favorite not found", GetSafeErrorMessage(store.ErrFavoriteNotFound))
	assert.Equal(t, "Invalid request format", GetSafeErrorMessage(shared.ErrInvalidJSON))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("pq: relation does not exist")))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

func TestGetSafeErrorMessage_GenerationFailureIsRedacted(t *testing.T) {
	upstream := fmt.Errorf("%w: status 401 for key=AIzaSyA1234567890abcdefghijklmno, Bearer sk-abcdefghijklmnopqrstuv",
		generation.ErrProviderCallFailed)
	err := fmt.Errorf("%w: %w", generation.ErrPromptGenerationFailed, upstream)

	msg := GetSafeErrorMessage(err)

	assert.Contains(t, msg, "Prompt generation failed: provider call failed: status 401")
	assert.NotContains(t, msg, "AIzaSyA1234567890abcdefghijklmno")
	assert.NotContains(t, msg, "sk-abcdefghijklmnopqrstuv")
}

func TestGetSafeErrorMessage_TruncatesLongDetail(t *testing.T) {
	long := make([]byte, 1000)
	for i := range long {
		long[i] = 'x'
	}
	err := fmt.Errorf("%w: %w: %s", generation.ErrPromptGenerationFailed, generation.ErrProviderCallFailed, long)

	msg := GetSafeErrorMessage(err)

	assert.LessOrEqual(t, len(msg), len("Prompt generation failed: ")+303)
	assert.Contains(t, msg, "...")
}

func TestGetSafeErrorMessage_TruncatesOnRuneBoundary(t *testing.T) {
	err := fmt.Errorf("%w: %s", generation.ErrPromptGenerationFailed, strings.Repeat("é", 400))

	msg := GetSafeErrorMessage(err)

	assert.True(t, utf8.ValidString(msg))
	detail := strings.TrimPrefix(msg, "Prompt generation failed: ")
	assert.Equal(t, strings.Repeat("é", 300)+"...", detail)
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&GeneratePromptsRequest{})
	assert.Equal(t, "Invalid idea: required field", SanitizeValidationError(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
