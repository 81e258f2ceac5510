package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/somnolab/sleep-science/docs"
	"github.com/somnolab/sleep-science/internal/api/handler"
	"github.com/somnolab/sleep-science/internal/api/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler         *handler.UserHandler
	sleepHistoryHandler *handler.SleepHistoryHandler
	sleepScienceHandler *handler.SleepScienceHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	sleepHistoryHandler *handler.SleepHistoryHandler,
	sleepScienceHandler *handler.SleepScienceHandler,
) *Router {
	return &Router{
		userHandler:         userHandler,
		sleepHistoryHandler: sleepHistoryHandler,
		sleepScienceHandler: sleepScienceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Raw sleep history (nested under users)
			r.Route("/{userId}/sleep-history", func(r chi.Router) {
				r.Put("/", rt.sleepHistoryHandler.Upsert)
				r.Get("/", rt.sleepHistoryHandler.List)
			})

			// Sleep science engine (nested under users)
			r.Route("/{userId}/sleep", func(r chi.Router) {
				r.Post("/baseline", rt.sleepScienceHandler.CalculateBaseline)
				r.Get("/mctq", rt.sleepScienceHandler.GetMCTQStats)
				r.Get("/debt", rt.sleepScienceHandler.GetDebt)
				r.Get("/daily-need", rt.sleepScienceHandler.GetDailyNeed)
				r.Get("/energy-curve", rt.sleepScienceHandler.GetEnergyCurve)
				r.Get("/chronotype", rt.sleepScienceHandler.GetChronotype)
				r.Get("/sufficiency", rt.sleepScienceHandler.CheckSufficiency)
			})
		})
	})

	return r
}
