package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/redact"
	"google.golang.org/genai"
)

// Client implements generation.TextProvider and generation.Pinger using the
// Gemini API.
type Client struct {
	models  *genai.Models
	config  Config
	timeout time.Duration
	logger  *slog.Logger
}

var (
	_ generation.TextProvider = (*Client)(nil)
	_ generation.Pinger       = (*Client)(nil)
)

// NewClient creates a Client. httpClient may be nil.
//
// Parameters:
//   - ctx: Context for client initialization
//   - cfg: API key, model and sampling settings
//   - httpClient: Optional HTTP client used for every request
//   - logger: A structured logger for operation logging
//
// Returns:
//   - A ready Client, or an error wrapping generation.ErrProviderNotConfigured
//     or generation.ErrInvalidConfig
func NewClient(ctx context.Context, cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create gemini client", "error", redact.Error(err))
		return nil, fmt.Errorf("%w: failed to create gemini client", generation.ErrInvalidConfig)
	}

	return &Client{
		models:  client.Models,
		config:  cfg,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:  logger.With("component", "gemini", "model", cfg.Model),
	}, nil
}

// Model returns the normalized model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// Generate sends prompt, with systemInstruction when non-empty, and returns
// the text of the first candidate. It makes exactly one request.
func (c *Client) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: %w", generation.ErrProviderCallFailed, ErrEmptyPrompt)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.config.Temperature)),
		TopP:        genai.Ptr(float32(c.config.TopP)),
	}
	if strings.TrimSpace(systemInstruction) != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.config.Model, contents, genConfig)
	if err != nil {
		return "", c.callError(ctx, err, time.Since(start))
	}

	text, err := extractText(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "unusable gemini response", "error", err)
		return "", err
	}

	c.logger.DebugContext(ctx, "gemini call completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))
	return text, nil
}

// Ping verifies the credential by fetching the configured model's metadata.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	if _, err := c.models.Get(ctx, c.config.Model, nil); err != nil {
		return c.callError(ctx, err, time.Since(start))
	}
	return nil
}

func (c *Client) callError(ctx context.Context, err error, elapsed time.Duration) error {
	c.logger.ErrorContext(ctx, "gemini call failed",
		"duration_ms", elapsed.Milliseconds(),
		"error", redact.Error(err))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: gemini call aborted: %w", generation.ErrProviderCallFailed, ctxErr)
	}
	return fmt.Errorf("%w: gemini request failed", generation.ErrProviderCallFailed)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: %w: no candidates", generation.ErrProviderCallFailed, generation.ErrEmptyResponse)
	}
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: %w", generation.ErrProviderCallFailed, generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: %w: empty candidate", generation.ErrProviderCallFailed, generation.ErrEmptyResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: %w", generation.ErrProviderCallFailed, generation.ErrEmptyResponse)
	}
	return text, nil
}
