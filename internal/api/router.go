package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/pillpal/med-scheduler/docs"
	"github.com/pillpal/med-scheduler/internal/api/handler"
	"github.com/pillpal/med-scheduler/internal/api/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	logger            zerolog.Logger
	patientHandler    *handler.PatientHandler
	medicationHandler *handler.MedicationHandler
	preferenceHandler *handler.PreferenceHandler
	scheduleHandler   *handler.ScheduleHandler
}

func NewRouter(
	logger zerolog.Logger,
	patientHandler *handler.PatientHandler,
	medicationHandler *handler.MedicationHandler,
	preferenceHandler *handler.PreferenceHandler,
	scheduleHandler *handler.ScheduleHandler,
) *Router {
	return &Router{
		logger:            logger,
		patientHandler:    patientHandler,
		medicationHandler: medicationHandler,
		preferenceHandler: preferenceHandler,
		scheduleHandler:   scheduleHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(rt.logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/patients", func(r chi.Router) {
			r.Post("/", rt.patientHandler.Create)
			r.Get("/{patientId}", rt.patientHandler.GetByID)

			r.Route("/{patientId}/medications", func(r chi.Router) {
				r.Post("/", rt.medicationHandler.Create)
				r.Get("/", rt.medicationHandler.List)
				r.Put("/{medicationId}", rt.medicationHandler.Update)
				r.Delete("/{medicationId}", rt.medicationHandler.Delete)
			})

			r.Route("/{patientId}/preferences", func(r chi.Router) {
				r.Get("/", rt.preferenceHandler.Get)
				r.Put("/", rt.preferenceHandler.Update)
			})

			r.Route("/{patientId}/schedule", func(r chi.Router) {
				r.Post("/generate", rt.scheduleHandler.Generate)
				r.Get("/calendar", rt.scheduleHandler.Calendar)
			})
		})
	})

	return r
}
