package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vannoorsab/FINAI/internal/api"
	"github.com/vannoorsab/FINAI/internal/api/handlers"
	"github.com/vannoorsab/FINAI/internal/app"
	"github.com/vannoorsab/FINAI/internal/config"
	"github.com/vannoorsab/FINAI/internal/jobs"
	"github.com/vannoorsab/FINAI/internal/jobs/inmemory"
	"github.com/vannoorsab/FINAI/internal/logger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	// Command-line flags override the environment
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP server port (or set PORT env)")
	flag.StringVar(&cfg.GCSBucket, "bucket", cfg.GCSBucket, "GCS bucket for statement archives (or set GCS_BUCKET env)")
	flag.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Assessment store: none, sqlite or bigquery (or set STORE_BACKEND env)")
	jsonLogs := flag.Bool("json-logs", false, "Emit JSON logs instead of console output")
	flag.Parse()

	log := logger.New(logger.Options{Level: cfg.LogLevel, JSON: *jsonLogs, Service: "finai-api"})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	services, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Close()

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.JobBuffer, cfg.JobWorkers, jobStore)

	assessments := handlers.NewAssessmentsHandler(services.Assessor, services.Store, jobQueue, log).
		WithCache(services.Cache).
		WithTimeout(cfg.ExternalTimeout)
	if services.Storage != nil && cfg.GCSBucket != "" {
		assessments.WithArchive(services.Storage, cfg.GCSBucket)
	}

	router := api.NewRouter(log, cfg.MaxUploadBytes, api.Handlers{
		Assessments: assessments,
		Jobs:        handlers.NewJobsHandler(jobStore),
		Marketplace: handlers.NewMarketplaceHandler(services.Marketplace, cfg.ExternalTimeout),
		Insights:    handlers.NewInsightsHandler(services.Assessor, services.Insights, cfg.ExternalTimeout),
		Features: handlers.Features{
			Store:   cfg.StoreBackend,
			Archive: cfg.GCSBucket != "",
			AI:      services.AIEnabled(),
			Videos:  services.VideosEnabled(),
			Notion:  services.Notion != nil,
			Jobs:    true,
			Cache:   true,
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Job workers run until the queue is stopped
	g.Go(func() error {
		log.Info().Int("workers", cfg.JobWorkers).Msg("Starting job workers")
		return jobQueue.Start(gctx, jobs.AssessHandler(services.Assessor, services.Store))
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		// Stop job queue and wait for in-flight jobs
		if err := jobQueue.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping job queue")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		services.Close()
		os.Exit(1)
	}

	log.Info().Msg("Server exited")
}
