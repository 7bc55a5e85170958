package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/CreditScore/internal/assessment"
	"github.com/MikeSquared-Agency/CreditScore/internal/store"
)

func NewRouter(svc *assessment.Service, s store.Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))

	assessments := NewAssessmentsHandler(svc, s)
	scoringHandler := NewScoringHandler(svc)
	explain := NewExplainHandler(s)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scoring/evaluate", scoringHandler.Evaluate)
		r.Get("/scoring/explain/{id}", explain.Explain)

		r.Post("/assessments", assessments.Create)
		r.Get("/assessments", assessments.List)
		r.Get("/assessments/{id}", assessments.Get)

		r.Get("/stats", admin.Stats)
	})

	return r
}

// NewMetricsRouter serves liveness and the Prometheus scrape endpoint for
// the collectors registered with g.
func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
