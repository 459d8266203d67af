package generation

import (
	"context"
	"log/slog"

	"github.com/phrazzld/promptchain/internal/domain"
)

// translationTemperature is the sampling temperature of the chat translator.
const translationTemperature = 0.3

// Translation is the secondary-language prompt and how it was obtained.
// Text is empty unless Status is success or fallback.
type Translation struct {
	Text   string
	Status domain.TranslationStatus
	Model  string
}

// Translator translates the primary prompt into the target language. The
// chat provider is tried first, then the text provider. When both fail the
// translation is reported as failed and no text is returned.
type Translator struct {
	chat      ChatProvider
	chatModel string
	text      TextProvider
	templates Templates
	logger    *slog.Logger
}

// NewTranslator creates a Translator. Either provider may be nil.
func NewTranslator(chat ChatProvider, chatModel string, text TextProvider, templates Templates, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	if chatModel == "" {
		chat = nil
	}
	return &Translator{
		chat:      chat,
		chatModel: chatModel,
		text:      text,
		templates: templates,
		logger:    logger.With("component", "translator"),
	}
}

// Translate translates text. It never returns an error.
func (t *Translator) Translate(ctx context.Context, text string) Translation {
	var chatStage, textStage Stage
	if t.chat != nil {
		chatStage = ChatStage(t.chat, ChatRequest{
			Model: t.chatModel,
			Messages: []Message{
				SystemMessage(t.templates.TranslatorSystem()),
				UserMessage(text),
			},
			Temperature: translationTemperature,
		})
	}
	if t.text != nil {
		textStage = TextStage(t.text, t.templates.TranslationMessage(text), "")
	}

	primary, fallback := chatStage, textStage
	if primary == nil {
		primary, fallback = textStage, nil
	}
	if primary == nil {
		return Translation{Status: domain.TranslationStatusSkipped}
	}

	outcome := RunWithFallback(ctx, primary, fallback)
	switch {
	case outcome.Kind == OutcomeSuccess && chatStage != nil:
		return Translation{Text: outcome.Primary.Text, Status: domain.TranslationStatusSuccess, Model: outcome.Primary.ProviderID}
	case outcome.Succeeded():
		res := outcome.Result()
		t.logger.WarnContext(ctx, "translation served by fallback provider",
			"provider", res.ProviderID,
			"primary_error", outcome.PrimaryErr)
		return Translation{Text: res.Text, Status: domain.TranslationStatusFallback, Model: res.ProviderID}
	default:
		t.logger.ErrorContext(ctx, "translation failed, leaving secondary prompt empty",
			"outcome", outcome.Kind.String(),
			"error", outcome.Err())
		return Translation{Status: domain.TranslationStatusFailed}
	}
}
