package generation

import (
	"context"
	"testing"

	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_Translate(t *testing.T) {
	tests := []struct {
		name string
		chat ChatProvider
		text TextProvider
		want Translation
	}{
		{
			name: "chat translator",
			chat: &fakeChat{name: "openai", fn: func(int, ChatRequest) (string, error) { return "portrait at the beach", nil }},
			text: textFailing(primaryModel, errNotCalled),
			want: Translation{Text: "portrait at the beach", Status: domain.TranslationStatusSuccess, Model: "openai/gpt-3.5-turbo"},
		},
		{
			name: "text provider fallback",
			chat: &fakeChat{name: "openai", fn: func(int, ChatRequest) (string, error) { return "", errUpstream }},
			text: textReturning(primaryModel, "portrait at the beach"),
			want: Translation{Text: "portrait at the beach", Status: domain.TranslationStatusFallback, Model: primaryModel},
		},
		{
			name: "text provider only",
			chat: nil,
			text: textReturning(primaryModel, "portrait"),
			want: Translation{Text: "portrait", Status: domain.TranslationStatusFallback, Model: primaryModel},
		},
		{
			name: "both fail",
			chat: &fakeChat{name: "openai", fn: func(int, ChatRequest) (string, error) { return "", errUpstream }},
			text: textFailing(primaryModel, errTimeout),
			want: Translation{Status: domain.TranslationStatusFailed},
		},
		{
			name: "nothing configured",
			want: Translation{Status: domain.TranslationStatusSkipped},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(tt.chat, "gpt-3.5-turbo", tt.text, DefaultTemplates(), discardLogger())
			assert.Equal(t, tt.want, tr.Translate(context.Background(), "retrato en la playa"))
		})
	}
}

func TestTranslator_Request(t *testing.T) {
	chat := &fakeChat{name: "openai", fn: func(int, ChatRequest) (string, error) { return "ok", nil }}
	tr := NewTranslator(chat, "gpt-3.5-turbo", nil, DefaultTemplates(), discardLogger())

	tr.Translate(context.Background(), "retrato en la playa")

	req := chat.Request(0)
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[0].Content, "from Spanish to English")
	assert.Equal(t, "retrato en la playa", req.Messages[1].Content)
}
