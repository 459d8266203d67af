package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/mocks"
	"github.com/phrazzld/promptchain/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: 8000, LogLevel: "info"},
		LLM: config.LLMConfig{
			PrimaryModel:       "gemini-2.5-pro",
			ChatModel:          "qwen/qwen-2-vl-72b-instruct",
			VisionModel:        "qwen/qwen-2-vl-72b-instruct",
			BackupVisionModel:  "meta-llama/llama-3-vision-free",
			TranslationModel:   "gpt-3.5-turbo",
			OpenRouterBaseURL:  "https://openrouter.invalid/api/v1/chat/completions",
			OpenAIBaseURL:      "https://openai.invalid/v1/chat/completions",
			SourceLanguage:     "Spanish",
			TargetLanguage:     "English",
			FastTimeoutSeconds: 5,
			ChatTimeoutSeconds: 5,
			MaxRetries:         2,
			RetryDelaySeconds:  0,
			Temperature:        0.7,
		},
		Characters: map[string]config.CharacterConfig{
			"andy": {Name: "Andy", Description: "29 years old, blonde"},
			"cony": {Name: "Cony", Description: "21 years old, Latina"},
		},
		Favorites: config.FavoritesConfig{
			Backend: config.FavoritesBackendCSV,
			CSVPath: filepath.Join(t.TempDir(), "favorites.csv"),
		},
		Workers: config.WorkersConfig{PoolSize: 2, QueueSize: 4},
	}
}

func newComponents(t *testing.T, cfg *config.Config, opts ...Option) *Components {
	t.Helper()
	c, err := New(context.Background(), cfg, discardLogger(), opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNew_WithoutCredentials(t *testing.T) {
	c := newComponents(t, testConfig(t))
	ctx := context.Background()

	req, err := domain.NewGenerationRequest("retrato en la playa", "portrait", []string{"andy"}, nil, "")
	require.NoError(t, err)

	local, err := c.Prompts.GenerateLocal(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, local.PromptPrimaryLang)

	_, err = c.Prompts.GenerateCombined(ctx, req)
	assert.ErrorIs(t, err, service.ErrGeneratorUnavailable)

	_, err = c.Prompts.Generate(ctx, req)
	assert.ErrorIs(t, err, generation.ErrPromptGenerationFailed)
	assert.ErrorIs(t, err, generation.ErrProviderNotConfigured)

	statuses := c.Prompts.CheckProviders(ctx)
	require.Len(t, statuses, 3)
	for _, st := range statuses {
		assert.False(t, st.Configured, st.Name)
		assert.False(t, st.OK, st.Name)
	}
	assert.Equal(t, []string{ProviderGemini, ProviderOpenRouter, ProviderOpenAI},
		[]string{statuses[0].Name, statuses[1].Name, statuses[2].Name})

	assert.Contains(t, c.Styles, "cinematic")
}

func TestNew_CSVFavorites(t *testing.T) {
	cfg := testConfig(t)
	c := newComponents(t, cfg)
	ctx := context.Background()

	fav, err := c.Favorites.Add(ctx, service.NewFavoriteInput{Title: "Playa", PromptPrimary: "retrato"})
	require.NoError(t, err)

	// A second process over the same file sees the favorite.
	other := newComponents(t, cfg)
	got, err := other.Favorites.Get(ctx, fav.ID)
	require.NoError(t, err)
	assert.Equal(t, "Playa", got.Title)
}

func TestNew_InjectedFavoriteStore(t *testing.T) {
	fake := &mocks.TestifyMockFavoriteStore{}
	fake.On("List", context.Background()).Return([]*domain.Favorite{}, nil)

	c := newComponents(t, testConfig(t), WithFavoriteStore(fake))

	list, err := c.Favorites.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	fake.AssertExpectations(t)
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Favorites.Backend = "redis"

	_, err := New(context.Background(), cfg, discardLogger())
	assert.Error(t, err)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, discardLogger())
	assert.Error(t, err)
}

// chatServer answers every chat completion with content and counts the calls.
func chatServer(t *testing.T, content string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer test-openrouter-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}, "finish_reason": "stop"}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_FallsBackToChatProvider(t *testing.T) {
	var calls atomic.Int32
	srv := chatServer(t, "retrato cinematográfico en la playa", &calls)

	cfg := testConfig(t)
	cfg.LLM.OpenRouterAPIKey = "test-openrouter-key"
	cfg.LLM.OpenRouterBaseURL = srv.URL
	c := newComponents(t, cfg)

	req, err := domain.NewGenerationRequest("playa", "cinematic", nil, nil, "")
	require.NoError(t, err)

	result, err := c.Prompts.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "retrato cinematográfico en la playa", result.PromptPrimaryLang)
	assert.Equal(t, domain.PrimaryStatusFailed, result.PrimaryStatus)
	assert.Equal(t, "qwen/qwen-2-vl-72b-instruct", result.FallbackModel)
	assert.Equal(t, domain.TranslationStatusSkipped, result.TranslationStatus)
	assert.NotEmpty(t, result.VideoPrompt)
	// One call for the prompt, one for the video prompt.
	assert.Equal(t, int32(2), calls.Load())

	combined, err := c.Prompts.GenerateCombined(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, combined.PromptPrimaryLang)

	statuses := c.Prompts.CheckProviders(context.Background())
	assert.True(t, statuses[1].Configured)
	assert.True(t, statuses[1].OK, statuses[1].Error)
}

func TestCharacterCatalog(t *testing.T) {
	catalog := characterCatalog(map[string]config.CharacterConfig{
		"Cony": {Name: "Cony", Description: "d1"},
		"andy": {Name: "Andy", Description: "d2"},
	})
	assert.Equal(t, []string{"andy", "cony"}, catalog.Keys())
	p, ok := catalog.Lookup("CONY")
	require.True(t, ok)
	assert.Equal(t, "d1", p.Description)
}

func TestNew_ContextErrorsPropagate(t *testing.T) {
	c := newComponents(t, testConfig(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := domain.NewGenerationRequest("playa", "", nil, nil, "")
	require.NoError(t, err)
	_, err = c.Prompts.GenerateLocal(ctx, req)
	assert.True(t, errors.Is(err, context.Canceled))
}
