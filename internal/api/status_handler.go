package api

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/config"
)

// ServiceName is reported by the status endpoint.
const ServiceName = "promptchain"

// StatusHandler serves the status, health and configuration endpoints.
type StatusHandler struct {
	cfg    *config.Config
	styles []string
	now    func() time.Time
	logger *slog.Logger
}

// NewStatusHandler creates a new StatusHandler. styles lists the styles the
// local template generator knows.
func NewStatusHandler(cfg *config.Config, styles []string, logger *slog.Logger) *StatusHandler {
	if cfg == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cfg cannot be nil for StatusHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatusHandler")
	}
	return &StatusHandler{
		cfg:    cfg,
		styles: append([]string(nil), styles...),
		now:    time.Now,
		logger: logger.With(slog.String("component", "status_handler")),
	}
}

// Status handles GET /
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status:  "running",
		Service: ServiceName,
		Keys:    h.cfg.KeyStatus(),
	})
}

// Health handles GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
	})
}

// Config handles GET /api/config. Credentials are reported only as
// configured flags.
func (h *StatusHandler) Config(w http.ResponseWriter, r *http.Request) {
	characters := make([]string, 0, len(h.cfg.Characters))
	for key := range h.cfg.Characters {
		characters = append(characters, key)
	}
	sort.Strings(characters)

	llm := h.cfg.LLM
	shared.RespondWithJSON(w, r, http.StatusOK, ConfigResponse{
		PrimaryModel:      llm.PrimaryModel,
		ChatModel:         llm.ChatModel,
		VisionModel:       llm.VisionModel,
		BackupVisionModel: llm.BackupVisionModel,
		AnimationModel:    llm.AnimationModel,
		TranslationModel:  llm.TranslationModel,
		SourceLanguage:    llm.SourceLanguage,
		TargetLanguage:    llm.TargetLanguage,
		MaxRetries:        llm.MaxRetries,
		Characters:        characters,
		Styles:            h.styles,
		FavoritesBackend:  h.cfg.Favorites.Backend,
		Keys:              h.cfg.KeyStatus(),
	})
}
