package api

import (
	"time"

	"github.com/phrazzld/promptchain/internal/config"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/generation"
)

// Common request/response structures

// GeneratePromptsRequest defines the payload of the JSON generation endpoints.
type GeneratePromptsRequest struct {
	Idea       string   `json:"idea"       validate:"required,max=4000"`
	Style      string   `json:"style"      validate:"max=100"`
	Characters []string `json:"characters" validate:"max=10,dive,max=50"`
}

// GenerationResponse wraps a generation result for the client.
type GenerationResponse struct {
	Success bool `json:"success"`
	*domain.GenerationResult

	// ModelInfo is a one-line provenance summary
	ModelInfo string `json:"model_info"`
}

func newGenerationResponse(result *domain.GenerationResult) GenerationResponse {
	return GenerationResponse{
		Success:          true,
		GenerationResult: result,
		ModelInfo:        result.ModelInfo(),
	}
}

// CreateFavoriteRequest defines the payload for saving a favorite.
type CreateFavoriteRequest struct {
	Title           string `json:"title"            validate:"required,max=200"`
	Character       string `json:"character"        validate:"max=50"`
	PromptPrimary   string `json:"prompt_primary"   validate:"required"`
	PromptSecondary string `json:"prompt_secondary"`
	PromptVideo     string `json:"prompt_video"`
}

// UpdateFavoriteRequest defines the payload for updating a favorite. Empty
// fields keep their stored values.
type UpdateFavoriteRequest struct {
	Title           string `json:"title"            validate:"max=200"`
	Character       string `json:"character"        validate:"max=50"`
	PromptPrimary   string `json:"prompt_primary"`
	PromptSecondary string `json:"prompt_secondary"`
	PromptVideo     string `json:"prompt_video"`
}

func (r UpdateFavoriteRequest) toDomain() domain.FavoriteUpdate {
	return domain.FavoriteUpdate{
		Title:           r.Title,
		Character:       r.Character,
		PromptPrimary:   r.PromptPrimary,
		PromptSecondary: r.PromptSecondary,
		PromptVideo:     r.PromptVideo,
	}
}

// FavoriteResponse wraps a single favorite.
type FavoriteResponse struct {
	Success  bool             `json:"success"`
	Favorite *domain.Favorite `json:"favorite"`
}

// FavoriteListResponse wraps a list of favorites.
type FavoriteListResponse struct {
	Success   bool               `json:"success"`
	Count     int                `json:"count"`
	Favorites []*domain.Favorite `json:"favorites"`
}

func newFavoriteListResponse(favorites []*domain.Favorite) FavoriteListResponse {
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	return FavoriteListResponse{Success: true, Count: len(favorites), Favorites: favorites}
}

// FavoriteStatsResponse wraps collection statistics.
type FavoriteStatsResponse struct {
	Success bool                 `json:"success"`
	Stats   domain.FavoriteStats `json:"stats"`
}

// SuccessResponse is returned by operations without a payload.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// StatusResponse is the body of GET /.
type StatusResponse struct {
	Status  string           `json:"status"`
	Service string           `json:"service"`
	Keys    config.KeyStatus `json:"keys"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ConfigResponse exposes the non-secret model configuration.
type ConfigResponse struct {
	PrimaryModel      string           `json:"primary_model"`
	ChatModel         string           `json:"chat_model"`
	VisionModel       string           `json:"vision_model"`
	BackupVisionModel string           `json:"backup_vision_model,omitempty"`
	AnimationModel    string           `json:"animation_model,omitempty"`
	TranslationModel  string           `json:"translation_model"`
	SourceLanguage    string           `json:"source_language"`
	TargetLanguage    string           `json:"target_language"`
	MaxRetries        int              `json:"max_retries"`
	Characters        []string         `json:"characters"`
	Styles            []string         `json:"styles"`
	FavoritesBackend  string           `json:"favorites_backend"`
	Keys              config.KeyStatus `json:"keys"`
}

// ProviderCheckResponse is the body of GET /api/providers/check.
type ProviderCheckResponse struct {
	Success   bool                        `json:"success"`
	Providers []generation.ProviderStatus `json:"providers"`
}
