// Medication Scheduler API
//
// REST API for medication schedule generation with conflict detection,
// adherence scoring, and calendar projection.
//
//	@title			Medication Scheduler API
//	@version		1.0
//	@description	Generate conflict-free, adherence-optimized daily dosing plans from a patient's medication list and routine.
//
//	@BasePath	/v1
//
//	@tag.name			patients
//	@tag.description	Patient profile endpoints
//
//	@tag.name			medications
//	@tag.description	Medication management endpoints
//
//	@tag.name			preferences
//	@tag.description	Lifestyle preference endpoints
//
//	@tag.name			schedule
//	@tag.description	Schedule generation and calendar endpoints
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/pillpal/med-scheduler/internal/api"
	"github.com/pillpal/med-scheduler/internal/api/handler"
	"github.com/pillpal/med-scheduler/internal/config"
	"github.com/pillpal/med-scheduler/internal/domain"
	"github.com/pillpal/med-scheduler/internal/interaction"
	"github.com/pillpal/med-scheduler/internal/llm"
	"github.com/pillpal/med-scheduler/internal/repository"
	"github.com/pillpal/med-scheduler/internal/seed"
	"github.com/pillpal/med-scheduler/internal/service"
	"github.com/pillpal/med-scheduler/internal/telemetry"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.LogLevel == "debug" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
		logger = logger.Level(zerolog.DebugLevel)
	}

	ctx := context.Background()

	// Initialize tracing (no-op without an OTLP endpoint)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "med-scheduler-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		_ = shutdownTracer(ctx)
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.Patient{}, &domain.Medication{}, &domain.LifestylePreferences{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	logger.Info().Msg("database migration completed")

	if cfg.Seed {
		logger.Info().Msg("seeding database with sample data (SEED=true)")
		if err := seed.Run(db); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	// Interaction lookup client (disabled without a base URL; the engine
	// fail-opens to an empty interaction set)
	interactionClient := interaction.NewClient(interaction.Config{
		BaseURL: cfg.InteractionBaseURL,
		APIKey:  cfg.InteractionAPIKey,
		Timeout: cfg.InteractionTimeout,
	}, logger)

	// Scheduling policy
	policy := service.DefaultPolicy()
	policy.MaxResolutionPasses = cfg.ResolutionPasses

	// Requirement extraction: pattern tables by default, OpenAI-backed
	// extractor (with pattern fallback) when configured
	var extractor service.RequirementExtractor = service.NewPatternExtractor(policy)
	if llmExtractor := llm.NewExtractor(cfg.OpenAIAPIKey, cfg.OpenAIExtractorModel, policy, extractor); llmExtractor != nil {
		logger.Info().Str("model", cfg.OpenAIExtractorModel).Msg("using OpenAI-backed requirement extractor")
		extractor = llmExtractor
	}

	// Initialize services
	patientService := service.NewPatientService(patientRepo)
	medicationService := service.NewMedicationService(medicationRepo, patientRepo)
	preferenceService := service.NewPreferenceService(preferenceRepo, patientRepo)
	scheduleService := service.NewScheduleService(medicationRepo, patientRepo, preferenceRepo, extractor, interactionClient, policy)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientService)
	medicationHandler := handler.NewMedicationHandler(medicationService)
	preferenceHandler := handler.NewPreferenceHandler(preferenceService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)

	// Setup router
	router := api.NewRouter(logger, patientHandler, medicationHandler, preferenceHandler, scheduleHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
