package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/promptchain/internal/domain"
)

// Stage names used in orchestrator logs.
const (
	StageInit          = "INIT"
	StageImageAnalysis = "IMAGE_ANALYSIS"
	StagePrimaryBuild  = "PRIMARY_BUILD"
	StageTranslate     = "TRANSLATE"
	StageDone          = "DONE"
)

// Orchestrator runs the prompt chain for one request at a time; it holds no
// per-request state and may serve concurrent requests.
type Orchestrator struct {
	vision     *VisionAnalyzer
	builder    *PrimaryPromptBuilder
	translator *Translator
	logger     *slog.Logger
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithVisionAnalyzer enables the IMAGE_ANALYSIS stage.
func WithVisionAnalyzer(v *VisionAnalyzer) OrchestratorOption {
	return func(o *Orchestrator) { o.vision = v }
}

// WithTranslator enables the TRANSLATE stage.
func WithTranslator(t *Translator) OrchestratorOption {
	return func(o *Orchestrator) { o.translator = t }
}

// NewOrchestrator creates an Orchestrator around builder.
func NewOrchestrator(builder *PrimaryPromptBuilder, logger *slog.Logger, opts ...OrchestratorOption) (*Orchestrator, error) {
	if builder == nil {
		return nil, fmt.Errorf("%w: prompt builder cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	o := &Orchestrator{
		builder: builder,
		logger:  logger.With("component", "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Process runs the chain for req. The only error it returns for a
// well-formed request wraps ErrPromptGenerationFailed (or the context error).
func (o *Orchestrator) Process(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", domain.ErrValidation)
	}
	log := o.logger
	log.InfoContext(ctx, "processing request",
		"stage", StageInit,
		"style", req.Style(),
		"characters", req.Characters(),
		"has_image", req.HasImage())

	var analysis string
	if req.HasImage() {
		analysis = o.analyzeImage(ctx, req)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "building prompts", "stage", StagePrimaryBuild)
	built, err := o.builder.Build(ctx, BuildInput{
		Idea:          req.Idea(),
		Style:         req.Style(),
		Characters:    req.Characters(),
		ImageAnalysis: analysis,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", err, ctxErr)
		}
		return nil, err
	}

	result := &domain.GenerationResult{
		PromptPrimaryLang: built.PromptText,
		VideoPrompt:       built.VideoPromptText,
		ModelUsed:         built.ModelUsed,
		PrimaryModel:      built.PrimaryModel,
		PrimaryStatus:     built.PrimaryStatus,
		FallbackModel:     built.FallbackModel,
		TranslationStatus: domain.TranslationStatusSkipped,
		ImageAnalysisUsed: analysis != "",
	}
	if result.VideoPrompt == "" {
		result.VideoPrompt = StaticVideoPrompt
	}

	if o.translator != nil {
		log.InfoContext(ctx, "translating prompt", "stage", StageTranslate)
		tr := o.translator.Translate(ctx, built.PromptText)
		result.PromptSecondaryLang = tr.Text
		result.TranslationStatus = tr.Status
		result.TranslationModel = tr.Model
	}

	log.InfoContext(ctx, "request completed",
		"stage", StageDone,
		"model_used", result.ModelUsed,
		"primary_status", string(result.PrimaryStatus),
		"translation_status", string(result.TranslationStatus),
		"prompt_length", len(result.PromptPrimaryLang),
		"video_prompt_length", len(result.VideoPrompt))
	return result, nil
}

func (o *Orchestrator) analyzeImage(ctx context.Context, req *domain.GenerationRequest) string {
	if o.vision == nil {
		o.logger.WarnContext(ctx, "image attached but no vision analyzer configured, skipping",
			"stage", StageImageAnalysis)
		return ""
	}
	o.logger.InfoContext(ctx, "analyzing image", "stage", StageImageAnalysis)
	res, err := o.vision.AnalyzeImage(ctx, req.Image(), req.ImageMIME())
	if err != nil {
		o.logger.WarnContext(ctx, "continuing without image context",
			"stage", StageImageAnalysis,
			"error", err)
		return ""
	}
	o.logger.InfoContext(ctx, "image analysis completed",
		"stage", StageImageAnalysis,
		"provider", res.ProviderID,
		"analysis_length", len(res.Text))
	return res.Text
}
