package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/promptchain/internal/domain"
)

// CombinedGenerator asks one chat model for the primary prompt, its
// translation and the video prompt in a single marked-up answer.
type CombinedGenerator struct {
	chat        ChatProvider
	model       string
	temperature float64
	retrier     *Retrier
	characters  *domain.CharacterCatalog
	templates   Templates
	logger      *slog.Logger
}

// NewCombinedGenerator creates a CombinedGenerator.
func NewCombinedGenerator(
	chat ChatProvider,
	model string,
	retrier *Retrier,
	characters *domain.CharacterCatalog,
	templates Templates,
	logger *slog.Logger,
) (*CombinedGenerator, error) {
	if chat == nil || model == "" {
		return nil, fmt.Errorf("%w: combined generator requires a chat provider and model", ErrInvalidConfig)
	}
	if retrier == nil {
		return nil, fmt.Errorf("%w: retrier cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if characters == nil {
		characters = domain.NewCharacterCatalog(nil)
	}
	return &CombinedGenerator{
		chat:        chat,
		model:       model,
		temperature: DefaultTemperature,
		retrier:     retrier,
		characters:  characters,
		templates:   templates,
		logger:      logger.With("component", "combined_generator"),
	}, nil
}

// Generate runs one retried chat call and parses its sections. A missing
// video section is replaced by StaticVideoPrompt.
func (g *CombinedGenerator) Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	message := g.templates.CombinedMessage(req.Idea(), req.Style(), g.characters.Context(req.Characters()))
	stage := RetriedChatStage(g.retrier, "combined prompt", g.chat, ChatRequest{
		Model: g.model,
		Messages: []Message{
			SystemMessage(g.templates.PhotoRules()),
			UserMessage(message),
		},
		Temperature: g.temperature,
	})

	res, err := stage(ctx)
	if err != nil {
		g.logger.ErrorContext(ctx, "combined generation failed", "model", g.model, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPromptGenerationFailed, err)
	}

	sections := ParseSections(res.Text)
	if !sections.Complete {
		g.logger.WarnContext(ctx, "combined answer missing section markers",
			"model", g.model,
			"primary_found", sections.Primary != "",
			"secondary_found", sections.Secondary != "",
			"video_found", sections.Video != "")
	}
	if sections.Primary == "" {
		return nil, fmt.Errorf("%w: %w", ErrPromptGenerationFailed, ErrEmptyResponse)
	}

	result := &domain.GenerationResult{
		PromptPrimaryLang:   sections.Primary,
		PromptSecondaryLang: sections.Secondary,
		VideoPrompt:         sections.Video,
		ModelUsed:           res.ProviderID,
		PrimaryModel:        res.ProviderID,
		PrimaryStatus:       domain.PrimaryStatusSuccess,
		TranslationStatus:   domain.TranslationStatusSuccess,
		TranslationModel:    res.ProviderID,
	}
	if result.PromptSecondaryLang == "" {
		result.TranslationStatus = domain.TranslationStatusFailed
		result.TranslationModel = ""
	}
	if result.VideoPrompt == "" {
		result.VideoPrompt = StaticVideoPrompt
	}
	return result, nil
}
