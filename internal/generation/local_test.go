package generation

import (
	"testing"

	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGenerator_Generate(t *testing.T) {
	g := NewLocalGenerator(testCharacters())

	tests := []struct {
		name       string
		style      string
		characters []string
		contains   []string
	}{
		{
			name:     "default style",
			style:    "",
			contains: []string{"50mm lens", "misty forest", "photography style"},
		},
		{
			name:     "portrait",
			style:    "portrait",
			contains: []string{"85mm lens", "portrait style"},
		},
		{
			name:     "unknown style uses photography template",
			style:    "vaporwave",
			contains: []string{"50mm lens", "vaporwave style"},
		},
		{
			name:       "characters are described",
			style:      "fashion",
			characters: []string{"cony"},
			contains:   []string{"featuring Cony: 21 years old"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := domain.NewGenerationRequest("misty forest", tc.style, tc.characters, nil, "")
			require.NoError(t, err)

			result := g.Generate(req)

			for _, want := range tc.contains {
				assert.Contains(t, result.PromptPrimaryLang, want)
			}
			assert.NotEmpty(t, result.VideoPrompt)
			assert.Equal(t, LocalModelID, result.ModelUsed)
			assert.Equal(t, domain.PrimaryStatusSuccess, result.PrimaryStatus)
			assert.Equal(t, domain.TranslationStatusSkipped, result.TranslationStatus)
		})
	}
}

func TestLocalGenerator_Deterministic(t *testing.T) {
	g := NewLocalGenerator(nil)
	req, err := domain.NewGenerationRequest("city rooftop", "cinematic", nil, nil, "")
	require.NoError(t, err)

	assert.Equal(t, g.Generate(req), g.Generate(req))
}

func TestLocalGenerator_StylesHaveTemplates(t *testing.T) {
	for _, style := range NewLocalGenerator(nil).Styles() {
		_, ok := styleTemplates[style]
		assert.True(t, ok, style)
	}
}
