package chatapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/redact"
)

// Well-known endpoints.
const (
	OpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	OpenAIURL     = "https://api.openai.com/v1/chat/completions"
)

const (
	defaultName        = "openrouter"
	defaultHTTPTimeout = 60 * time.Second
	maxResponseBytes   = 4 << 20
	pingPrompt         = "Reply with the single word OK."
)

// Config captures the runtime settings for one chat endpoint.
type Config struct {
	// Name identifies the provider in model ids and logs ("openrouter", "openai").
	Name    string
	APIKey  string
	BaseURL string
	// Model is used when a request leaves its model empty, and by Ping.
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// Client wraps an OpenAI-compatible chat completion API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ generation.ChatProvider = (*Client)(nil)
	_ generation.Pinger       = (*Client)(nil)
)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a chat client using the supplied configuration. An
// empty API key is an error wrapping generation.ErrProviderNotConfigured.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg = Config{
		Name:           strings.ToLower(strings.TrimSpace(cfg.Name)),
		APIKey:         strings.TrimSpace(cfg.APIKey),
		BaseURL:        strings.TrimSpace(cfg.BaseURL),
		Model:          strings.TrimSpace(cfg.Model),
		Referer:        strings.TrimSpace(cfg.Referer),
		Title:          strings.TrimSpace(cfg.Title),
		TimeoutSeconds: cfg.TimeoutSeconds,
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: %s api key required", generation.ErrProviderNotConfigured, firstNonEmpty(cfg.Name, defaultName))
	}
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = OpenRouterURL
	}

	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = client.logger.With("component", "chatapi", "provider", cfg.Name)
	return client, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.cfg.Name
}

// Complete issues one chat completion request and returns the first
// non-empty content of the response.
func (c *Client) Complete(ctx context.Context, req generation.ChatRequest) (string, error) {
	model := firstNonEmpty(req.Model, c.cfg.Model)
	if model == "" {
		return "", fmt.Errorf("%w: %s: model required", generation.ErrInvalidConfig, c.cfg.Name)
	}
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("%w: %s: at least one message required", generation.ErrInvalidConfig, c.cfg.Name)
	}

	payload := chatCompletionRequest{
		Model:       model,
		Messages:    make([]chatMessage, 0, len(req.Messages)),
		Temperature: req.Temperature,
	}
	for _, m := range req.Messages {
		payload.Messages = append(payload.Messages, toChatMessage(m))
	}

	start := time.Now()
	completion, err := c.send(ctx, payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "chat completion failed",
			"model", model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", redact.Error(err))
		return "", err
	}

	content, finishReason := extractCompletionPayload(completion)
	if content == "" {
		if finishReason == "content_filter" {
			return "", fmt.Errorf("%w: %w", generation.ErrProviderCallFailed, generation.ErrContentBlocked)
		}
		return "", fmt.Errorf("%w: %w: finish_reason=%q", generation.ErrProviderCallFailed, generation.ErrEmptyResponse, finishReason)
	}

	c.logger.DebugContext(ctx, "chat completion succeeded",
		"model", model,
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(content))
	return content, nil
}

// Ping issues a minimal completion against the configured model to verify
// the credential.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Complete(ctx, generation.ChatRequest{
		Model:    c.cfg.Model,
		Messages: []generation.Message{generation.UserMessage(pingPrompt)},
	})
	return err
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatMessage content is either a plain string or a list of contentPart
// values when images are attached.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
		// Some providers return the streaming schema even when stream=false.
		Delta        chatCompletionMessage `json:"delta"`
		Text         string                `json:"text"`
		FinishReason string                `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type chatCompletionMessage struct {
	Content string `json:"content"`
	Refusal string `json:"refusal"`
}

func toChatMessage(m generation.Message) chatMessage {
	if len(m.Images) == 0 {
		return chatMessage{Role: string(m.Role), Content: m.Content}
	}
	parts := make([]contentPart, 0, len(m.Images)+1)
	parts = append(parts, contentPart{Type: "text", Text: m.Content})
	for _, img := range m.Images {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: dataURL(img)},
		})
	}
	return chatMessage{Role: string(m.Role), Content: parts}
}

func dataURL(img generation.Image) string {
	mime := firstNonEmpty(img.MIMEType, "image/jpeg")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// StatusError reports a non-2xx response. The response body is never included.
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request: http %d", e.Provider, e.StatusCode)
}

// Unwrap lets callers match generation.ErrProviderCallFailed.
func (e *StatusError) Unwrap() error {
	return generation.ErrProviderCallFailed
}

func (c *Client) send(ctx context.Context, payload chatCompletionRequest) (chatCompletionResponse, error) {
	var completion chatCompletionResponse
	encoded, err := json.Marshal(payload)
	if err != nil {
		return completion, fmt.Errorf("%w: %s request: encode body: %v", generation.ErrProviderCallFailed, c.cfg.Name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(encoded))
	if err != nil {
		return completion, fmt.Errorf("%w: %s request: build request", generation.ErrProviderCallFailed, c.cfg.Name)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", c.cfg.Referer)
		req.Header.Set("Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		req.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return completion, fmt.Errorf("%w: %s request aborted: %w", generation.ErrProviderCallFailed, c.cfg.Name, ctxErr)
		}
		var timeout interface{ Timeout() bool }
		if errors.As(err, &timeout) && timeout.Timeout() {
			return completion, fmt.Errorf("%w: %s request timed out: %w", generation.ErrProviderCallFailed, c.cfg.Name, context.DeadlineExceeded)
		}
		return completion, fmt.Errorf("%w: %s request: transport error", generation.ErrProviderCallFailed, c.cfg.Name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return completion, fmt.Errorf("%w: %s request: read body", generation.ErrProviderCallFailed, c.cfg.Name)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.DebugContext(ctx, "chat endpoint returned error status",
			"status", resp.StatusCode,
			"body", redact.String(summarizePayloadSnippet(string(body))))
		return completion, &StatusError{Provider: c.cfg.Name, StatusCode: resp.StatusCode}
	}
	if err := json.Unmarshal(body, &completion); err != nil {
		return completion, fmt.Errorf("%w: %s request: decode response", generation.ErrProviderCallFailed, c.cfg.Name)
	}
	if completion.Error != nil {
		c.logger.DebugContext(ctx, "chat endpoint returned api error",
			"message", redact.String(summarizePayloadSnippet(completion.Error.Message)))
		return completion, fmt.Errorf("%w: %s request: api error", generation.ErrProviderCallFailed, c.cfg.Name)
	}
	return completion, nil
}

func extractCompletionPayload(completion chatCompletionResponse) (string, string) {
	var finishReason string
	for _, choice := range completion.Choices {
		if finishReason == "" {
			finishReason = strings.TrimSpace(choice.FinishReason)
		}
		if content := firstNonEmpty(
			choice.Message.Content,
			choice.Delta.Content,
			choice.Text,
		); content != "" {
			return content, finishReason
		}
	}
	return "", finishReason
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
