package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primaryVision = "qwen/qwen-2-vl-72b-instruct"
	backupVision  = "meta-llama/llama-3-vision-free"
)

func newTestAnalyzer(t *testing.T, chat ChatProvider) *VisionAnalyzer {
	t.Helper()
	r, _ := testRetrier(3)
	a, err := NewVisionAnalyzer(chat, r, DefaultTemplates(), primaryVision, backupVision, discardLogger())
	require.NoError(t, err)
	return a
}

func TestVisionAnalyzer_PrimarySucceeds(t *testing.T) {
	chat := chatReturning("woman standing on wet sand, golden backlight")
	a := newTestAnalyzer(t, chat)

	res, err := a.AnalyzeImage(context.Background(), []byte{1, 2, 3}, "image/png")

	require.NoError(t, err)
	assert.Equal(t, "woman standing on wet sand, golden backlight", res.Text)
	assert.Equal(t, "openrouter/"+primaryVision, res.ProviderID)
	require.Equal(t, 1, chat.Calls())

	req := chat.Request(0)
	assert.Equal(t, primaryVision, req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, RoleSystem, req.Messages[0].Role)
	require.Len(t, req.Messages[1].Images, 1)
	assert.Equal(t, "image/png", req.Messages[1].Images[0].MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, req.Messages[1].Images[0].Data)
}

func TestVisionAnalyzer_StickyBackup(t *testing.T) {
	chat := &fakeChat{name: "openrouter", fn: func(_ int, req ChatRequest) (string, error) {
		if req.Model == primaryVision {
			return "", errUpstream
		}
		return "backup analysis", nil
	}}
	a := newTestAnalyzer(t, chat)

	res, err := a.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "backup analysis", res.Text)
	assert.Equal(t, "openrouter/"+backupVision, res.ProviderID)
	// three retried primary attempts plus one backup call
	assert.Equal(t, 4, chat.Calls())
	assert.Equal(t, backupVision, a.CurrentModel())

	_, err = a.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, 5, chat.Calls())
	assert.Equal(t, backupVision, chat.Request(4).Model)
}

func TestVisionAnalyzer_BothFail(t *testing.T) {
	chat := chatFailing(errUpstream)
	a := newTestAnalyzer(t, chat)

	_, err := a.AnalyzeImage(context.Background(), []byte{1}, "image/jpeg")

	assert.ErrorIs(t, err, ErrVisionAnalysisFailed)
	assert.ErrorIs(t, err, ErrProviderCallFailed)
	assert.Equal(t, 4, chat.Calls())
	assert.Equal(t, primaryVision, a.CurrentModel())
}

func TestVisionAnalyzer_NoImage(t *testing.T) {
	chat := chatReturning("unused")
	a := newTestAnalyzer(t, chat)

	_, err := a.AnalyzeImage(context.Background(), nil, "")

	assert.ErrorIs(t, err, ErrVisionAnalysisFailed)
	assert.Zero(t, chat.Calls())
}

func TestNewVisionAnalyzer_Validation(t *testing.T) {
	r, _ := testRetrier(1)
	_, err := NewVisionAnalyzer(nil, r, DefaultTemplates(), primaryVision, backupVision, discardLogger())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewVisionAnalyzer(chatReturning("x"), r, DefaultTemplates(), "", backupVision, discardLogger())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewVisionAnalyzer(chatReturning("x"), r, DefaultTemplates(), primaryVision, backupVision, nil)
	assert.Error(t, err)
}
