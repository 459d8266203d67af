package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig               `mapstructure:"server" validate:"required"`
	LLM        LLMConfig                  `mapstructure:"llm" validate:"required"`
	Characters map[string]CharacterConfig `mapstructure:"characters" validate:"dive"`
	Favorites  FavoritesConfig            `mapstructure:"favorites" validate:"required"`
	Database   DatabaseConfig             `mapstructure:"database"`
	Workers    WorkersConfig              `mapstructure:"workers" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	MaxUploadBytes         int64  `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// ReadTimeout returns the HTTP server read timeout.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the HTTP server write timeout.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// LLMConfig contains provider credentials, model identifiers and retry
// parameters. Credentials may be empty; the matching provider is then
// reported as not configured.
type LLMConfig struct {
	GeminiAPIKey     string `mapstructure:"gemini_api_key"`
	OpenRouterAPIKey string `mapstructure:"openrouter_api_key"`
	OpenAIAPIKey     string `mapstructure:"openai_api_key"`

	PrimaryModel      string `mapstructure:"primary_model" validate:"required"`
	ChatModel         string `mapstructure:"chat_model" validate:"required"`
	VisionModel       string `mapstructure:"vision_model" validate:"required"`
	BackupVisionModel string `mapstructure:"backup_vision_model"`
	AnimationModel    string `mapstructure:"animation_model"`
	TranslationModel  string `mapstructure:"translation_model" validate:"required"`

	OpenRouterBaseURL string `mapstructure:"openrouter_base_url" validate:"required,url"`
	OpenAIBaseURL     string `mapstructure:"openai_base_url" validate:"required,url"`
	GeminiBaseURL     string `mapstructure:"gemini_base_url" validate:"omitempty,url"`
	HTTPReferer       string `mapstructure:"http_referer"`
	AppTitle          string `mapstructure:"app_title"`

	SourceLanguage string `mapstructure:"source_language" validate:"required"`
	TargetLanguage string `mapstructure:"target_language" validate:"required"`

	FastTimeoutSeconds int     `mapstructure:"fast_timeout_seconds" validate:"gt=0"`
	ChatTimeoutSeconds int     `mapstructure:"chat_timeout_seconds" validate:"gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=1,lte=10"`
	RetryDelaySeconds  int     `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=60"`
	Temperature        float64 `mapstructure:"temperature" validate:"gt=0,lte=2"`
}

// RetryDelay returns the base backoff delay.
func (l LLMConfig) RetryDelay() time.Duration {
	return time.Duration(l.RetryDelaySeconds) * time.Second
}

// CharacterConfig describes one character profile.
type CharacterConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
}

// Favorites storage backends.
const (
	FavoritesBackendCSV      = "csv"
	FavoritesBackendPostgres = "postgres"
)

// FavoritesConfig selects where favorites are stored.
type FavoritesConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=csv postgres"`
	CSVPath string `mapstructure:"csv_path" validate:"required_if=Backend csv"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL is required only for the postgres favorites backend.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// WorkersConfig sizes the provider-call worker pool.
type WorkersConfig struct {
	PoolSize  int `mapstructure:"pool_size" validate:"gt=0,lte=256"`
	QueueSize int `mapstructure:"queue_size" validate:"gte=0"`
}

// KeyStatus reports which provider credentials are configured.
type KeyStatus struct {
	Gemini     bool `json:"gemini"`
	OpenRouter bool `json:"openrouter"`
	OpenAI     bool `json:"openai"`
}

// KeyStatus reports which provider credentials are set.
func (c *Config) KeyStatus() KeyStatus {
	return KeyStatus{
		Gemini:     c.LLM.GeminiAPIKey != "",
		OpenRouter: c.LLM.OpenRouterAPIKey != "",
		OpenAI:     c.LLM.OpenAIAPIKey != "",
	}
}
