package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Menova10/menova-empower-journey/internal/handler"
	"github.com/Menova10/menova-empower-journey/internal/metrics"
)

// Setup wires the content API, the function endpoints under /functions,
// health and metrics.
func Setup(h *handler.Handler, functions http.Handler, timeout time.Duration) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(handler.CORS)
	r.Use(middleware.Timeout(timeout))

	// Routes
	r.Route("/content", func(r chi.Router) {
		r.Get("/", h.GetAllContent)
		r.Post("/refresh", h.RefreshContent)
		r.Get("/personalized", h.GetPersonalizedContent)
		r.Get("/status", h.GetStatus)
		r.Get("/{id}/related", h.GetRelatedContent)
	})
	if functions != nil {
		r.Mount("/functions", functions)
	}
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
