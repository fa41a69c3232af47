// Package router sets up the HTTP route tree and middleware chain for
// the timeline API. Routes are grouped by collection; uploaded images
// are served statically from the uploads directory.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/moshiurrahmandeap11/osman-server/internal/handlers"
	"github.com/moshiurrahmandeap11/osman-server/internal/middleware"
)

const (
	// submitLimit caps public submissions per client IP per window.
	submitLimit  = 10
	submitWindow = time.Minute
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up. uploadsDir is served under /uploads/timeline.
func New(categories *handlers.Categories, posts *handlers.Posts, requests *handlers.Requests, uploadsDir string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler)

	submitLimiter := middleware.NewRateLimiter(submitLimit, submitWindow)

	r.Route("/api", func(r chi.Router) {
		r.Route("/timeline-categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})

		r.Route("/timeline-post-requests", func(r chi.Router) {
			r.Get("/", requests.List)
			r.With(submitLimiter.Middleware).Post("/", requests.Submit)
			r.Get("/stats/count", requests.Stats)
			r.Get("/{id}", requests.Get)
			r.Put("/{id}/status", requests.Review)
			r.Delete("/{id}", requests.Delete)
		})

		r.Route("/timeline-posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Post("/", posts.Create)
			r.Get("/category/{category}", posts.ListByCategory)
			r.Get("/{id}", posts.Get)
			r.Put("/{id}", posts.Update)
			r.Delete("/{id}", posts.Delete)
			r.Patch("/{id}/status", posts.SetStatus)
		})
	})

	// Uploaded images are served from the same public path their derived
	// URLs point at.
	fileServer := http.StripPrefix("/uploads/timeline/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/timeline/*", fileServer.ServeHTTP)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
