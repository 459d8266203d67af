package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/platform/logger"
)

// ErrGeneratorUnavailable indicates a generation mode whose provider is not configured.
var ErrGeneratorUnavailable = errors.New("generator not configured")

// Processor runs the full prompt chain.
type Processor interface {
	Process(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
}

// CombinedGenerator produces every prompt in a single provider call.
type CombinedGenerator interface {
	Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
}

// LocalGenerator produces prompts from templates without a provider.
type LocalGenerator interface {
	Generate(req *domain.GenerationRequest) *domain.GenerationResult
}

// PromptService exposes the generation modes and the provider health check.
type PromptService interface {
	// Generate runs the prompt chain.
	Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)

	// GenerateCombined runs the single-call generator.
	GenerateCombined(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)

	// GenerateLocal builds prompts from templates only.
	GenerateLocal(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)

	// CheckProviders pings every provider.
	CheckProviders(ctx context.Context) []generation.ProviderStatus
}

// PromptServiceDeps holds the collaborators of the prompt service. Combined
// may be nil when no chat provider is configured.
type PromptServiceDeps struct {
	Chain    Processor
	Combined CombinedGenerator
	Local    LocalGenerator
	Checks   []generation.ProviderCheck
}

type promptServiceImpl struct {
	deps   PromptServiceDeps
	logger *slog.Logger
}

// NewPromptService creates a PromptService.
func NewPromptService(deps PromptServiceDeps, logger *slog.Logger) (PromptService, error) {
	if deps.Chain == nil {
		return nil, fmt.Errorf("%w: prompt chain cannot be nil", ErrMissingDependency)
	}
	if deps.Local == nil {
		return nil, fmt.Errorf("%w: local generator cannot be nil", ErrMissingDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrMissingDependency)
	}
	return &promptServiceImpl{
		deps:   deps,
		logger: logger.With(slog.String("component", "prompt_service")),
	}, nil
}

func (s *promptServiceImpl) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Info("generating prompts",
		slog.String("style", req.Style()),
		slog.Any("characters", req.Characters()),
		slog.Bool("has_image", req.HasImage()))

	result, err := s.deps.Chain.Process(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info("prompts generated",
		slog.String("model_used", result.ModelUsed),
		slog.String("primary_status", string(result.PrimaryStatus)),
		slog.String("translation_status", string(result.TranslationStatus)))
	return result, nil
}

func (s *promptServiceImpl) GenerateCombined(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if s.deps.Combined == nil {
		return nil, ErrGeneratorUnavailable
	}
	return s.deps.Combined.Generate(ctx, req)
}

func (s *promptServiceImpl) GenerateLocal(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.deps.Local.Generate(req), nil
}

func (s *promptServiceImpl) CheckProviders(ctx context.Context) []generation.ProviderStatus {
	statuses := generation.CheckProviders(ctx, s.deps.Checks)
	log := logger.FromContextOrDefault(ctx, s.logger)
	for _, st := range statuses {
		log.Info("provider check",
			slog.String("provider", st.Name),
			slog.Bool("configured", st.Configured),
			slog.Bool("ok", st.OK))
	}
	return statuses
}
