package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/service"
)

// MockPromptService implements service.PromptService with function fields
// and records the requests it receives.
type MockPromptService struct {
	GenerateFn         func(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
	GenerateCombinedFn func(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
	GenerateLocalFn    func(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
	CheckProvidersFn   func(ctx context.Context) []generation.ProviderStatus

	mu       sync.Mutex
	requests []*domain.GenerationRequest
}

var _ service.PromptService = (*MockPromptService)(nil)

// Requests returns the requests received so far, in order.
func (m *MockPromptService) Requests() []*domain.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockPromptService) record(req *domain.GenerationRequest) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
}

// StubResult returns a successful primary-provider result.
func StubResult() *domain.GenerationResult {
	return &domain.GenerationResult{
		PromptPrimaryLang:   "retrato en la playa al atardecer",
		PromptSecondaryLang: "portrait on the beach at sunset",
		VideoPrompt:         "slow zoom on subject",
		ModelUsed:           "gemini-2.5-pro",
		PrimaryModel:        "gemini-2.5-pro",
		PrimaryStatus:       domain.PrimaryStatusSuccess,
		TranslationStatus:   domain.TranslationStatusSuccess,
	}
}

// Generate implements service.PromptService.
func (m *MockPromptService) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.record(req)
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	return StubResult(), nil
}

// GenerateCombined implements service.PromptService.
func (m *MockPromptService) GenerateCombined(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.record(req)
	if m.GenerateCombinedFn != nil {
		return m.GenerateCombinedFn(ctx, req)
	}
	return StubResult(), nil
}

// GenerateLocal implements service.PromptService.
func (m *MockPromptService) GenerateLocal(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	m.record(req)
	if m.GenerateLocalFn != nil {
		return m.GenerateLocalFn(ctx, req)
	}
	return StubResult(), nil
}

// CheckProviders implements service.PromptService.
func (m *MockPromptService) CheckProviders(ctx context.Context) []generation.ProviderStatus {
	if m.CheckProvidersFn != nil {
		return m.CheckProvidersFn(ctx)
	}
	return nil
}
