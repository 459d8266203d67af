package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/promptchain/internal/generation"
)

// MockTextProvider implements generation.TextProvider with function fields.
type MockTextProvider struct {
	ModelID    string
	GenerateFn func(ctx context.Context, prompt, systemInstruction string) (string, error)
	PingFn     func(ctx context.Context) error

	calls atomic.Int64
}

var (
	_ generation.TextProvider = (*MockTextProvider)(nil)
	_ generation.Pinger       = (*MockTextProvider)(nil)
)

// Generate implements generation.TextProvider.
func (m *MockTextProvider) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	m.calls.Add(1)
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt, systemInstruction)
	}
	return "generated text", nil
}

// Model implements generation.TextProvider.
func (m *MockTextProvider) Model() string {
	if m.ModelID == "" {
		return "mock-text-model"
	}
	return m.ModelID
}

// Ping implements generation.Pinger.
func (m *MockTextProvider) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

// Calls returns how many times Generate ran.
func (m *MockTextProvider) Calls() int { return int(m.calls.Load()) }

// MockChatProvider implements generation.ChatProvider with function fields.
type MockChatProvider struct {
	ProviderName string
	CompleteFn   func(ctx context.Context, req generation.ChatRequest) (string, error)
	PingFn       func(ctx context.Context) error

	calls atomic.Int64
}

var (
	_ generation.ChatProvider = (*MockChatProvider)(nil)
	_ generation.Pinger       = (*MockChatProvider)(nil)
)

// Complete implements generation.ChatProvider.
func (m *MockChatProvider) Complete(ctx context.Context, req generation.ChatRequest) (string, error) {
	m.calls.Add(1)
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return "chat reply", nil
}

// Name implements generation.ChatProvider.
func (m *MockChatProvider) Name() string {
	if m.ProviderName == "" {
		return "mock-chat"
	}
	return m.ProviderName
}

// Ping implements generation.Pinger.
func (m *MockChatProvider) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

// Calls returns how many times Complete ran.
func (m *MockChatProvider) Calls() int { return int(m.calls.Load()) }
