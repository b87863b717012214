package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/cat-census/internal/delivery/http/handler"
	"github.com/user/cat-census/internal/delivery/http/middleware"
	"github.com/user/cat-census/pkg/metrics"
	"go.uber.org/zap"
)

// New wires the API routes. runTimeout bounds a single census run; 0 leaves it unbounded.
func New(h *handler.Handler, logger *zap.Logger, runTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	r.Get("/api/health", h.HandleHealthCheck)

	r.Route("/api/census", func(r chi.Router) {
		run := r.With()
		if runTimeout > 0 {
			run = r.With(chimw.Timeout(runTimeout))
		}
		run.Post("/", h.HandleRunCensus)
		r.Get("/latest", h.HandleLatestCensus)
	})

	return r
}
