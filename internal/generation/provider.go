package generation

import (
	"context"
	"fmt"
)

// TextProvider is a single-shot text-generation endpoint taking a prompt and
// an optional system instruction.
type TextProvider interface {
	// Generate returns the generated text for prompt.
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)

	// Model returns the model identifier this provider calls.
	Model() string
}

// Role is the author of a chat message.
type Role string

// Chat roles
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Image is binary image content attached to a chat message.
type Image struct {
	MIMEType string
	Data     []byte
}

// Message is one entry of a chat conversation.
type Message struct {
	Role    Role
	Content string
	Images  []Image
}

// ChatRequest is a chat-completion call against a specific model.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// ChatProvider is a chat-style endpoint used for general text and for
// vision-capable models.
type ChatProvider interface {
	// Complete returns the assistant text for req.
	Complete(ctx context.Context, req ChatRequest) (string, error)

	// Name returns the provider identifier, e.g. "openrouter".
	Name() string
}

// Pinger is implemented by providers that support a cheap credential check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderResult is the outcome of one stage against one provider.
type ProviderResult struct {
	Text       string         `json:"text"`
	ProviderID string         `json:"provider_id"`
	Attempts   int            `json:"attempts"`
	Errors     []AttemptError `json:"errors,omitempty"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message with optional images.
func UserMessage(content string, images ...Image) Message {
	return Message{Role: RoleUser, Content: content, Images: images}
}

// ChatModelID qualifies a model with its provider name, e.g.
// "openrouter/qwen/qwen-2-vl-72b-instruct".
func ChatModelID(p ChatProvider, model string) string {
	return p.Name() + "/" + model
}

type unconfiguredText struct {
	model string
}

// UnconfiguredText returns a TextProvider for a provider without a
// credential. Every call fails with ErrProviderNotConfigured, so the
// fallback provider takes over.
func UnconfiguredText(model string) TextProvider {
	return unconfiguredText{model: model}
}

func (u unconfiguredText) Generate(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrProviderNotConfigured, u.model)
}

func (u unconfiguredText) Model() string { return u.model }
