package generation

import (
	"context"
	"log/slog"
)

// StaticVideoPrompt is returned when no provider can derive a video prompt.
const StaticVideoPrompt = "slow zoom on subject, soft warm light, ~5s duration, soft transition"

// videoTemperature is the sampling temperature of the chat fallback.
const videoTemperature = 0.5

// VideoPromptDeriver derives a camera-movement and animation suggestion from
// a finished photographic prompt. It never fails.
type VideoPromptDeriver struct {
	text      TextProvider
	chat      ChatProvider
	chatModel string
	templates Templates
	logger    *slog.Logger
}

// NewVideoPromptDeriver creates a deriver. Either provider may be nil.
func NewVideoPromptDeriver(text TextProvider, chat ChatProvider, chatModel string, templates Templates, logger *slog.Logger) *VideoPromptDeriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoPromptDeriver{
		text:      text,
		chat:      chat,
		chatModel: chatModel,
		templates: templates,
		logger:    logger.With("component", "video_deriver"),
	}
}

// Derive returns the video prompt for photoPrompt. The primary text provider
// is called once, then the chat provider once, then StaticVideoPrompt is used.
func (d *VideoPromptDeriver) Derive(ctx context.Context, photoPrompt string) string {
	text, _ := d.DeriveOutcome(ctx, photoPrompt)
	return text
}

// DeriveOutcome is Derive that also reports how the text was obtained.
func (d *VideoPromptDeriver) DeriveOutcome(ctx context.Context, photoPrompt string) (string, Outcome) {
	message := d.templates.VideoMessage(photoPrompt)

	var primary, fallback Stage
	if d.text != nil {
		primary = TextStage(d.text, message, "")
	}
	if d.chat != nil && d.chatModel != "" {
		fallback = ChatStage(d.chat, ChatRequest{
			Model:       d.chatModel,
			Messages:    []Message{UserMessage(message)},
			Temperature: videoTemperature,
		})
	}
	if primary == nil {
		primary, fallback = fallback, nil
	}
	if primary == nil {
		return StaticVideoPrompt, Outcome{Kind: OutcomeRetriedThenFailed, PrimaryErr: ErrProviderNotConfigured}
	}

	outcome := RunWithFallback(ctx, primary, fallback)
	if outcome.Succeeded() {
		d.logger.DebugContext(ctx, "video prompt derived",
			"outcome", outcome.Kind.String(),
			"provider", outcome.Result().ProviderID)
		return outcome.Result().Text, outcome
	}

	d.logger.WarnContext(ctx, "video prompt providers failed, using static prompt",
		"outcome", outcome.Kind.String(),
		"error", outcome.Err())
	return StaticVideoPrompt, outcome
}
