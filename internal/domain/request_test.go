package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerationRequest(t *testing.T) {
	t.Run("normalizes input", func(t *testing.T) {
		req, err := NewGenerationRequest("  a quiet harbor at dawn ", "", []string{"Andy", " cony", "andy", ""}, nil, "")
		require.NoError(t, err)

		assert.Equal(t, "a quiet harbor at dawn", req.Idea())
		assert.Equal(t, DefaultStyle, req.Style())
		assert.Equal(t, []string{"andy", "cony"}, req.Characters())
		assert.False(t, req.HasImage())
		assert.Empty(t, req.ImageMIME())
	})

	t.Run("rejects empty idea", func(t *testing.T) {
		_, err := NewGenerationRequest("   ", "cinematic", nil, nil, "")
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrEmptyIdea)
	})

	t.Run("copies the image", func(t *testing.T) {
		img := []byte{0xff, 0xd8, 0xff}
		req, err := NewGenerationRequest("idea", "photography", nil, img, "")
		require.NoError(t, err)

		img[0] = 0
		assert.True(t, req.HasImage())
		assert.Equal(t, byte(0xff), req.Image()[0])
		assert.Equal(t, "image/jpeg", req.ImageMIME())
	})

	t.Run("rejects oversized image", func(t *testing.T) {
		_, err := NewGenerationRequest("idea", "", nil, make([]byte, MaxImageBytes+1), "image/png")
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestParseCharacterList(t *testing.T) {
	assert.Nil(t, ParseCharacterList("  "))
	assert.Equal(t, []string{"andy", "cony"}, ParseCharacterList("andy, cony,,"))
}

func TestGenerationResult_ModelInfo(t *testing.T) {
	r := &GenerationResult{PrimaryModel: "gemini-2.5-pro", PrimaryStatus: PrimaryStatusSuccess}
	assert.Equal(t, "Primary: gemini-2.5-pro (success)", r.ModelInfo())

	r = &GenerationResult{
		PrimaryModel:  "gemini-2.5-pro",
		PrimaryStatus: PrimaryStatusFailed,
		FallbackModel: "qwen/qwen-2-vl-72b-instruct",
	}
	assert.Equal(t, "Primary: gemini-2.5-pro (failed) | Fallback: qwen/qwen-2-vl-72b-instruct", r.ModelInfo())
}
