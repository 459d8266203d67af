package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every configuration environment variable.
const EnvPrefix = "PROMPTCHAIN"

// Default character profiles.
const (
	defaultAndyDescription = "29 years old, blonde, blue eyes, athletic feminine build, sensual, cheerful"
	defaultConyDescription = "21 years old, Latina, cinnamon skin, green eyes, black hair, athletic feminine build, seductive gaze"
)

// legacyEnv maps configuration keys to the unprefixed variable names the
// service has historically read from .env files.
var legacyEnv = map[string]string{
	"llm.gemini_api_key":          "GEMINI_API_KEY",
	"llm.openrouter_api_key":      "OPENROUTER_API_KEY",
	"llm.openai_api_key":          "OPENAI_API_KEY",
	"llm.primary_model":           "MODELO_A_LOGICO",
	"llm.vision_model":            "MODELO_B_VISION",
	"llm.animation_model":         "MODELO_ANIMACION",
	"llm.max_retries":             "MAX_RETRIES",
	"llm.retry_delay_seconds":     "RETRY_DELAY_SECONDS",
	"characters.andy.description": "PERFIL_ANDY",
	"characters.cony.description": "PERFIL_CONY",
	"database.url":                "DATABASE_URL",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load reading the given config file instead of searching for
// config.yaml. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config file path cannot be empty")
	}
	return load(path)
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDerivedDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 120)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openrouter_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.primary_model", "gemini-2.5-pro")
	v.SetDefault("llm.chat_model", "")
	v.SetDefault("llm.vision_model", "qwen/qwen-2-vl-72b-instruct")
	v.SetDefault("llm.backup_vision_model", "meta-llama/llama-3-vision-free")
	v.SetDefault("llm.animation_model", "wan/wan-2.1-t2v-480p")
	v.SetDefault("llm.translation_model", "gpt-3.5-turbo")
	v.SetDefault("llm.openrouter_base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("llm.openai_base_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.gemini_base_url", "")
	v.SetDefault("llm.http_referer", "http://localhost:8000")
	v.SetDefault("llm.app_title", "promptchain")
	v.SetDefault("llm.source_language", "Spanish")
	v.SetDefault("llm.target_language", "English")
	v.SetDefault("llm.fast_timeout_seconds", 30)
	v.SetDefault("llm.chat_timeout_seconds", 60)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("characters.andy.name", "Andy")
	v.SetDefault("characters.andy.description", defaultAndyDescription)
	v.SetDefault("characters.cony.name", "Cony")
	v.SetDefault("characters.cony.description", defaultConyDescription)

	v.SetDefault("favorites.backend", FavoritesBackendCSV)
	v.SetDefault("favorites.csv_path", "favorites.csv")

	v.SetDefault("database.url", "")

	v.SetDefault("workers.pool_size", 4)
	v.SetDefault("workers.queue_size", 64)
}

func (c *Config) applyDerivedDefaults() {
	// The fallback text model runs on the same provider as vision.
	if strings.TrimSpace(c.LLM.ChatModel) == "" {
		c.LLM.ChatModel = c.LLM.VisionModel
	}
	c.Server.LogLevel = strings.ToLower(strings.TrimSpace(c.Server.LogLevel))
	c.Favorites.Backend = strings.ToLower(strings.TrimSpace(c.Favorites.Backend))
}

// Validate checks the struct tags and the cross-field rules.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Favorites.Backend == FavoritesBackendPostgres && c.Database.URL == "" {
		return errors.New("config validation failed: database.url is required for the postgres favorites backend")
	}
	return nil
}
