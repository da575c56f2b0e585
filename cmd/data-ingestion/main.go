// Package main provides the entry point for the data ingestion service.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/betlab/internal/config"
	"github.com/yourusername/betlab/internal/database"
	"github.com/yourusername/betlab/internal/datasource"
	"github.com/yourusername/betlab/internal/health"
	"github.com/yourusername/betlab/internal/logger"
	"github.com/yourusername/betlab/internal/metrics"
	"github.com/yourusername/betlab/internal/repository"
	"github.com/yourusername/betlab/internal/scheduler"
	"github.com/yourusername/betlab/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Data ingestion service starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection and schema
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()
	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Initialize data source clients
	httpLogger := log.New(os.Stdout, "datasource-http: ", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), httpLogger)
	defer httpClient.Close()

	factory := datasource.NewFactory(cfg, log.New(os.Stdout, "datasource: ", log.LstdFlags))
	fixtures, err := factory.NewFootballDataSource(httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create fixtures source")
	}
	odds, err := factory.NewOddsAPISource(httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create odds source")
	}

	// Assemble the pipeline. The canonical team set starts from whatever the
	// store already knows and is refreshed after every sync.
	ingestLog := logger.NewIngestionLogger(appLog)
	teams, err := repos.Match.ListTeams(ctx)
	if err != nil {
		appLog.WithError(err).Warn("Failed to load canonical teams; resolver starts empty")
	}
	merger := service.NewDataMerger(teams, ingestLog)
	validator := service.NewDataValidator()

	ingestion := service.NewIngestionService(
		fixtures,
		odds,
		repos.Match,
		repos.Quarantine,
		validator,
		merger,
		ingestLog,
		cfg.Ingestion.BatchSize,
	)

	// Schedule recurring syncs
	sched := scheduler.NewScheduler(ingestion, log.New(os.Stdout, "scheduler: ", log.LstdFlags))
	currentSeason := cfg.Ingestion.Seasons[len(cfg.Ingestion.Seasons)-1]
	if err := sched.ScheduleRecentSync(cfg.Ingestion.HistoricalSync, currentSeason, cfg.Ingestion.SyncWindowDays); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule recent sync")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping scheduler")
		}
	}()

	// Start health and metrics server
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        fmt.Sprintf("%d", cfg.Ingestion.HealthPort),
		Logger:      appLog,
		DB:          db,
		Quarantine:  repos.Quarantine,
		Metrics:     metrics.Handler(),
	})
	go func() {
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Error("Health server stopped")
		}
	}()
	defer func() {
		if err := healthServer.Shutdown(); err != nil {
			appLog.WithError(err).Error("Error shutting down health server")
		}
	}()

	// Backfill all configured seasons once at startup, then hand off to the
	// scheduler. A failed season does not abort the rest.
	go func() {
		for _, season := range cfg.Ingestion.Seasons {
			if ctx.Err() != nil {
				return
			}
			if _, err := ingestion.SyncSeason(ctx, season); err != nil {
				appLog.WithError(err).WithField("season", season).Error("Historical sync failed")
			}
		}
		healthServer.SetReady(true)
		appLog.Info("Historical backfill complete; scheduler active")
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()

	// Give in-flight jobs time to settle
	time.Sleep(2 * time.Second)
	appLog.Info("Data ingestion service shut down")
}
