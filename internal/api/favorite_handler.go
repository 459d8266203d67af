package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/phrazzld/promptchain/internal/service"
)

// ExportFilename is the attachment name of GET /api/favorites/export.
const ExportFilename = "favorites.json"

// FavoriteHandler handles favorite-related HTTP requests
type FavoriteHandler struct {
	favoriteService service.FavoriteService
	logger          *slog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	if favoriteService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("favoriteService cannot be nil for FavoriteHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for FavoriteHandler")
	}
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger.With(slog.String("component", "favorite_handler")),
	}
}

// CreateFavorite handles POST /api/favorites
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateFavoriteRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	favorite, err := h.favoriteService.Add(r.Context(), service.NewFavoriteInput{
		Title:           req.Title,
		Character:       req.Character,
		PromptPrimary:   req.PromptPrimary,
		PromptSecondary: req.PromptSecondary,
		PromptVideo:     req.PromptVideo,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("favorite saved", slog.String("favorite_id", favorite.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, FavoriteResponse{Success: true, Favorite: favorite})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newFavoriteListResponse(favorites))
}

// SearchFavorites handles GET /api/favorites/search?q=
func (h *FavoriteHandler) SearchFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newFavoriteListResponse(favorites))
}

// GetFavorite handles GET /api/favorites/{id}
func (h *FavoriteHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}
	favorite, err := h.favoriteService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FavoriteResponse{Success: true, Favorite: favorite})
}

// UpdateFavorite handles PUT /api/favorites/{id}
func (h *FavoriteHandler) UpdateFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateFavoriteRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request body", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	favorite, err := h.favoriteService.Update(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	log.Debug("favorite updated", slog.String("favorite_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, FavoriteResponse{Success: true, Favorite: favorite})
}

// DeleteFavorite handles DELETE /api/favorites/{id}
func (h *FavoriteHandler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}
	if err := h.favoriteService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	log.Debug("favorite deleted", slog.String("favorite_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true, Message: "Favorite deleted"})
}

// ExportFavorites handles GET /api/favorites/export. The body is the JSON
// array itself, served as an attachment.
func (h *FavoriteHandler) ExportFavorites(w http.ResponseWriter, r *http.Request) {
	data, err := h.favoriteService.Export(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("failed to write export", slog.String("error", err.Error()))
	}
}

// FavoriteStats handles GET /api/favorites/stats
func (h *FavoriteHandler) FavoriteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.favoriteService.Stats(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FavoriteStatsResponse{Success: true, Stats: stats})
}
