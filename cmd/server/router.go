package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/wordcard-api/internal/api"
	apiMiddleware "github.com/phrazzld/wordcard-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	cardHandler := api.NewCardHandler(app.cardService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/cards", cardHandler.CreateCard)
	})

	// Single-endpoint form used by function-style deployments.
	r.Post("/", cardHandler.CreateCard)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
