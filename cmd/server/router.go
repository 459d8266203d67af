package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/promptchain/internal/api"
	apiMiddleware "github.com/phrazzld/promptchain/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	statusHandler := api.NewStatusHandler(app.config, app.styles, app.logger)
	promptHandler := api.NewPromptHandler(app.promptService, app.config.Server.MaxUploadBytes, app.logger)
	favoriteHandler := api.NewFavoriteHandler(app.favoriteService, app.logger)

	r.Get("/", statusHandler.Status)
	r.Get("/health", statusHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", statusHandler.Config)
		r.Get("/providers/check", promptHandler.CheckProviders)

		// Generation endpoints
		r.Post("/generate-prompts", promptHandler.GeneratePrompts)
		r.Post("/generate-with-image", promptHandler.GenerateWithImage)
		r.Post("/prompts/combined", promptHandler.GenerateCombined)
		r.Post("/prompts/local", promptHandler.GenerateLocal)

		// Favorites endpoints
		r.Route("/favorites", func(r chi.Router) {
			r.Post("/", favoriteHandler.CreateFavorite)
			r.Get("/", favoriteHandler.ListFavorites)
			r.Get("/search", favoriteHandler.SearchFavorites)
			r.Get("/stats", favoriteHandler.FavoriteStats)
			r.Get("/export", favoriteHandler.ExportFavorites)
			r.Get("/{id}", favoriteHandler.GetFavorite)
			r.Put("/{id}", favoriteHandler.UpdateFavorite)
			r.Delete("/{id}", favoriteHandler.DeleteFavorite)
		})
	})

	return r
}
