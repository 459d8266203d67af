package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/promptchain/internal/domain"
)

// DefaultTemperature is the sampling temperature of the chat fallback.
const DefaultTemperature = 0.7

// BuildInput is the input of PrimaryPromptBuilder.Build.
type BuildInput struct {
	Idea          string
	Style         string
	Characters    []string
	ImageAnalysis string
}

// BuildOutput is the photographic prompt, its video prompt and provenance.
type BuildOutput struct {
	PromptText      string
	VideoPromptText string
	ModelUsed       string
	PrimaryModel    string
	PrimaryStatus   domain.PrimaryStatus
	FallbackModel   string
	Outcome         OutcomeKind
	Primary         ProviderResult
	Fallback        ProviderResult
}

// PrimaryPromptBuilder builds the base-language photographic prompt with the
// primary text provider, falling back to a chat model with the same rules.
type PrimaryPromptBuilder struct {
	text          TextProvider
	chat          ChatProvider
	fallbackModel string
	temperature   float64
	retrier       *Retrier
	characters    *domain.CharacterCatalog
	deriver       *VideoPromptDeriver
	templates     Templates
	logger        *slog.Logger
}

// BuilderConfig holds the collaborators of a PrimaryPromptBuilder.
type BuilderConfig struct {
	Text          TextProvider
	Chat          ChatProvider
	FallbackModel string
	Temperature   float64
	Retrier       *Retrier
	Characters    *domain.CharacterCatalog
	Deriver       *VideoPromptDeriver
	Templates     Templates
}

// NewPrimaryPromptBuilder validates cfg and creates a builder. The chat
// provider is optional; without it a primary failure is final.
func NewPrimaryPromptBuilder(cfg BuilderConfig, logger *slog.Logger) (*PrimaryPromptBuilder, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Text == nil {
		return nil, fmt.Errorf("%w: primary text provider cannot be nil", ErrInvalidConfig)
	}
	if cfg.Retrier == nil {
		return nil, fmt.Errorf("%w: retrier cannot be nil", ErrInvalidConfig)
	}
	if cfg.Characters == nil {
		cfg.Characters = domain.NewCharacterCatalog(nil)
	}
	if cfg.Chat != nil && cfg.FallbackModel == "" {
		return nil, fmt.Errorf("%w: fallback model cannot be empty", ErrInvalidConfig)
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Deriver == nil {
		cfg.Deriver = NewVideoPromptDeriver(cfg.Text, cfg.Chat, cfg.FallbackModel, cfg.Templates, logger)
	}
	return &PrimaryPromptBuilder{
		text:          cfg.Text,
		chat:          cfg.Chat,
		fallbackModel: cfg.FallbackModel,
		temperature:   cfg.Temperature,
		retrier:       cfg.Retrier,
		characters:    cfg.Characters,
		deriver:       cfg.Deriver,
		templates:     cfg.Templates,
		logger:        logger.With("component", "prompt_builder"),
	}, nil
}

// UserMessage returns the combined instruction sent for in.
func (b *PrimaryPromptBuilder) UserMessage(in BuildInput) string {
	return b.templates.UserMessage(in.Idea, in.Style, b.characters.Context(in.Characters), in.ImageAnalysis)
}

// Build produces the photographic prompt and its video prompt. When both the
// primary provider and the fallback fail it returns an error wrapping
// ErrPromptGenerationFailed and the fallback's error.
func (b *PrimaryPromptBuilder) Build(ctx context.Context, in BuildInput) (*BuildOutput, error) {
	message := b.UserMessage(in)
	primaryModel := b.text.Model()

	var fallback Stage
	if b.chat != nil {
		fallback = ChatStage(b.chat, ChatRequest{
			Model: b.fallbackModel,
			Messages: []Message{
				SystemMessage(b.templates.PhotoRules()),
				UserMessage(message),
			},
			Temperature: b.temperature,
		})
	}

	b.logger.InfoContext(ctx, "building photographic prompt",
		"primary_model", primaryModel,
		"has_image_analysis", in.ImageAnalysis != "")

	outcome := RunWithFallback(ctx,
		RetriedTextStage(b.retrier, "primary prompt", b.text, message, ""),
		fallback,
	)

	out := &BuildOutput{
		PrimaryModel: primaryModel,
		Outcome:      outcome.Kind,
		Primary:      outcome.Primary,
		Fallback:     outcome.Fallback,
	}

	switch outcome.Kind {
	case OutcomeSuccess:
		out.PromptText = outcome.Primary.Text
		out.ModelUsed = primaryModel
		out.PrimaryStatus = domain.PrimaryStatusSuccess
	case OutcomeFellBackSucceeded:
		b.logger.WarnContext(ctx, "primary provider failed, fallback succeeded",
			"primary_model", primaryModel,
			"fallback_model", b.fallbackModel,
			"primary_error", outcome.PrimaryErr)
		out.PromptText = outcome.Fallback.Text
		out.ModelUsed = outcome.Fallback.ProviderID
		out.PrimaryStatus = domain.PrimaryStatusFailed
		out.FallbackModel = b.fallbackModel
	default:
		b.logger.ErrorContext(ctx, "prompt generation failed",
			"primary_model", primaryModel,
			"outcome", outcome.Kind.String(),
			"error", outcome.Err())
		return nil, fmt.Errorf("%w: %w", ErrPromptGenerationFailed, outcome.Err())
	}

	out.VideoPromptText = b.deriver.Derive(ctx, out.PromptText)
	return out, nil
}
