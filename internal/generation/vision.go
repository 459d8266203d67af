package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// visionTemperature is the sampling temperature for image analysis.
const visionTemperature = 0.5

// VisionAnalyzer turns an image into a technical description using a
// vision-capable chat model. After a successful switch to the backup model
// the analyzer keeps using it for the rest of its lifetime.
type VisionAnalyzer struct {
	chat        ChatProvider
	retrier     *Retrier
	templates   Templates
	backupModel string
	logger      *slog.Logger

	mu           sync.RWMutex
	currentModel string
}

// NewVisionAnalyzer creates a VisionAnalyzer starting on primaryModel.
func NewVisionAnalyzer(
	chat ChatProvider,
	retrier *Retrier,
	templates Templates,
	primaryModel, backupModel string,
	logger *slog.Logger,
) (*VisionAnalyzer, error) {
	if chat == nil {
		return nil, fmt.Errorf("%w: vision analyzer requires a chat provider", ErrInvalidConfig)
	}
	if retrier == nil {
		return nil, fmt.Errorf("%w: vision analyzer requires a retrier", ErrInvalidConfig)
	}
	if primaryModel == "" {
		return nil, fmt.Errorf("%w: vision model cannot be empty", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &VisionAnalyzer{
		chat:         chat,
		retrier:      retrier,
		templates:    templates,
		backupModel:  backupModel,
		currentModel: primaryModel,
		logger:       logger.With("component", "vision_analyzer"),
	}, nil
}

// CurrentModel returns the model the next analysis will start with.
func (a *VisionAnalyzer) CurrentModel() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentModel
}

// AnalyzeImage returns a one-paragraph technical description of image.
// The current model is retried; on exhaustion the backup model gets exactly
// one call. Failure of both wraps ErrVisionAnalysisFailed.
func (a *VisionAnalyzer) AnalyzeImage(ctx context.Context, image []byte, mimeType string) (ProviderResult, error) {
	if len(image) == 0 {
		return ProviderResult{}, fmt.Errorf("%w: no image data", ErrVisionAnalysisFailed)
	}

	model := a.CurrentModel()
	request := func(model string) ChatRequest {
		return ChatRequest{
			Model: model,
			Messages: []Message{
				SystemMessage(a.templates.VisionSystem()),
				UserMessage(a.templates.VisionInstruction(), Image{MIMEType: mimeType, Data: image}),
			},
			Temperature: visionTemperature,
		}
	}

	var fallback Stage
	if a.backupModel != "" && a.backupModel != model {
		fallback = ChatStage(a.chat, request(a.backupModel))
	}

	a.logger.InfoContext(ctx, "analyzing image", "model", model, "image_bytes", len(image))
	outcome := RunWithFallback(ctx,
		RetriedChatStage(a.retrier, "vision analysis", a.chat, request(model)),
		fallback,
	)

	switch outcome.Kind {
	case OutcomeSuccess:
		return outcome.Primary, nil
	case OutcomeFellBackSucceeded:
		a.mu.Lock()
		a.currentModel = a.backupModel
		a.mu.Unlock()
		a.logger.WarnContext(ctx, "switched to backup vision model",
			"from_model", model,
			"to_model", a.backupModel,
			"primary_error", outcome.PrimaryErr)
		return outcome.Fallback, nil
	default:
		a.logger.ErrorContext(ctx, "image analysis failed",
			"model", model,
			"outcome", outcome.Kind.String(),
			"error", outcome.Err())
		return outcome.Result(), fmt.Errorf("%w: %w", ErrVisionAnalysisFailed, outcome.Err())
	}
}
