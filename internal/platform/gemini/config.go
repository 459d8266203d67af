package gemini

import (
	"fmt"
	"strings"

	"github.com/phrazzld/promptchain/internal/generation"
)

// Default sampling parameters for prompt generation.
const (
	DefaultTemperature    = 0.7
	DefaultTopP           = 0.95
	DefaultTimeoutSeconds = 30
)

// Config holds the settings for a Gemini Client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the genai default.
	BaseURL        string
	Temperature    float64
	TopP           float64
	TimeoutSeconds int
}

func (c Config) withDefaults() Config {
	c.Model = NormalizeModel(c.Model)
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.TopP <= 0 || c.TopP > 1 {
		c.TopP = DefaultTopP
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return c
}

func (c Config) validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrProviderNotConfigured)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: gemini model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// NormalizeModel strips the "models/" prefix and any ":suffix" (such as
// ":free") from a model identifier.
func NormalizeModel(model string) string {
	model = strings.TrimSpace(model)
	model = strings.TrimPrefix(model, "models/")
	if i := strings.Index(model, ":"); i >= 0 {
		model = model[:i]
	}
	return model
}
