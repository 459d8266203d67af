package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
	"github.com/phrazzld/promptchain/internal/platform/chatapi"
	"github.com/phrazzld/promptchain/internal/platform/gemini"
	"github.com/phrazzld/promptchain/internal/service"
)

// Provider names reported by the health check.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

// providers holds the configured clients. A nil field means the provider has
// no credential.
type providers struct {
	gemini     *gemini.Client
	openRouter *chatapi.Client
	openAI     *chatapi.Client
}

func newProviders(ctx context.Context, cfg config.LLMConfig, httpClient *http.Client, log *slog.Logger) (*providers, error) {
	p := &providers{}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.PrimaryModel,
			BaseURL:        cfg.GeminiBaseURL,
			Temperature:    cfg.Temperature,
			TimeoutSeconds: cfg.FastTimeoutSeconds,
		}, httpClient, log)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		p.gemini = client
	}

	if cfg.OpenRouterAPIKey != "" {
		client, err := chatapi.NewClient(chatapi.Config{
			Name:           ProviderOpenRouter,
			APIKey:         cfg.OpenRouterAPIKey,
			BaseURL:        cfg.OpenRouterBaseURL,
			Model:          cfg.ChatModel,
			Referer:        cfg.HTTPReferer,
			Title:          cfg.AppTitle,
			TimeoutSeconds: cfg.ChatTimeoutSeconds,
		}, chatapi.WithHTTPClient(httpClient), chatapi.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("openrouter client: %w", err)
		}
		p.openRouter = client
	}

	if cfg.OpenAIAPIKey != "" {
		client, err := chatapi.NewClient(chatapi.Config{
			Name:           ProviderOpenAI,
			APIKey:         cfg.OpenAIAPIKey,
			BaseURL:        cfg.OpenAIBaseURL,
			Model:          cfg.TranslationModel,
			TimeoutSeconds: cfg.FastTimeoutSeconds,
		}, chatapi.WithHTTPClient(httpClient), chatapi.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		p.openAI = client
	}

	return p, nil
}

// checks lists every provider for the health check, configured or not.
func (p *providers) checks(cfg config.LLMConfig) []generation.ProviderCheck {
	checks := []generation.ProviderCheck{
		{Name: ProviderGemini, Model: cfg.PrimaryModel},
		{Name: ProviderOpenRouter, Model: cfg.ChatModel},
		{Name: ProviderOpenAI, Model: cfg.TranslationModel},
	}
	if p.gemini != nil {
		checks[0].Pinger = p.gemini
	}
	if p.openRouter != nil {
		checks[1].Pinger = p.openRouter
	}
	if p.openAI != nil {
		checks[2].Pinger = p.openAI
	}
	return checks
}

// characterCatalog converts the configured profiles into a catalog.
func characterCatalog(characters map[string]config.CharacterConfig) *domain.CharacterCatalog {
	keys := make([]string, 0, len(characters))
	for k := range characters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	profiles := make([]domain.CharacterProfile, 0, len(keys))
	for _, k := range keys {
		c := characters[k]
		profiles = append(profiles, domain.CharacterProfile{Key: k, Name: c.Name, Description: c.Description})
	}
	return domain.NewCharacterCatalog(profiles)
}

// chain holds the generation components built from the providers.
type chain struct {
	deps   service.PromptServiceDeps
	styles []string
}

// newChain wires the providers into the orchestrator, the combined and the
// local generators. Every provider call goes through runner.
func newChain(cfg config.LLMConfig, characters *domain.CharacterCatalog, p *providers, runner generation.Runner, log *slog.Logger) (*chain, error) {
	templates := generation.Templates{SourceLanguage: cfg.SourceLanguage, TargetLanguage: cfg.TargetLanguage}
	retrier := generation.NewRetrier(cfg.MaxRetries, cfg.RetryDelay(), log)

	var (
		text       generation.TextProvider
		geminiText generation.TextProvider
		chat       generation.ChatProvider
		translate  generation.ChatProvider
	)
	if p.gemini != nil {
		geminiText = generation.PooledText(p.gemini, runner)
		text = geminiText
	} else {
		log.Warn("gemini API key not configured, primary prompts will use the fallback provider")
		text = generation.UnconfiguredText(cfg.PrimaryModel)
	}
	if p.openRouter != nil {
		chat = generation.PooledChat(p.openRouter, runner)
	}
	if p.openAI != nil {
		translate = generation.PooledChat(p.openAI, runner)
	}

	builder, err := generation.NewPrimaryPromptBuilder(generation.BuilderConfig{
		Text:          text,
		Chat:          chat,
		FallbackModel: cfg.ChatModel,
		Temperature:   cfg.Temperature,
		Retrier:       retrier,
		Characters:    characters,
		Templates:     templates,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("prompt builder: %w", err)
	}

	var opts []generation.OrchestratorOption
	if chat != nil {
		vision, err := generation.NewVisionAnalyzer(chat, retrier, templates, cfg.VisionModel, cfg.BackupVisionModel, log)
		if err != nil {
			return nil, fmt.Errorf("vision analyzer: %w", err)
		}
		opts = append(opts, generation.WithVisionAnalyzer(vision))
	}
	if translate != nil || geminiText != nil {
		opts = append(opts, generation.WithTranslator(
			generation.NewTranslator(translate, cfg.TranslationModel, geminiText, templates, log)))
	}

	orchestrator, err := generation.NewOrchestrator(builder, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	local := generation.NewLocalGenerator(characters)
	c := &chain{
		deps: service.PromptServiceDeps{
			Chain:  orchestrator,
			Local:  local,
			Checks: p.checks(cfg),
		},
		styles: local.Styles(),
	}
	if chat != nil {
		combined, err := generation.NewCombinedGenerator(chat, cfg.ChatModel, retrier, characters, templates, log)
		if err != nil {
			return nil, fmt.Errorf("combined generator: %w", err)
		}
		c.deps.Combined = combined
	}
	return c, nil
}
