package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/adlerOmonte1/AItime/internal/api/http"
	"github.com/adlerOmonte1/AItime/internal/config"
	"github.com/adlerOmonte1/AItime/internal/dataset"
	"github.com/adlerOmonte1/AItime/internal/forecast"
	"github.com/adlerOmonte1/AItime/internal/log"
	"github.com/adlerOmonte1/AItime/internal/scheduler"
	"github.com/adlerOmonte1/AItime/internal/weather"
	"github.com/adlerOmonte1/AItime/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Debug); err != nil {
		log.Errorf("failed to initialize logger: %v", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Errorf("invalid config: %v", err)
		os.Exit(1)
	}

	// The server still starts without a dataset; forecasts then report
	// "model not loaded".
	data, err := dataset.Load(cfg.ModelFile)
	if err != nil {
		log.Errorf("failed to load dataset %s: %v", cfg.ModelFile, err)
	} else {
		first, last, _ := data.Range()
		log.Infow("dataset loaded", "path", cfg.ModelFile, "days", data.Len(), "first", first, "last", last)
	}

	forecaster := forecast.NewCached(forecast.New(data, forecast.Options{
		StartYear:       cfg.HistoryStartYear,
		EndYear:         cfg.HistoryEndYear,
		MinTrendSamples: cfg.MinTrendSamples,
		Workers:         cfg.ForecastWorkers,
	}), cfg.CacheMaxEntries, cfg.CacheMaxAge)

	// Shared HTTP client for outbound collaborator calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var geocoder weather.ReverseGeocoder
	if cfg.GoogleAPIKey != "" {
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleAPIKey)
	} else {
		geocoder = providers.NewNominatimGeocoder(httpClient, cfg.NominatimURL, cfg.NominatimUserAgent)
	}
	archive := providers.NewOpenMeteoArchive(httpClient, cfg.ArchiveURL)
	log.Infof("using %s reverse geocoder and %s ground truth", geocoder.Name(), archive.Name())

	service := weather.NewService(forecaster, geocoder, archive, data)
	service.SetTimeout(cfg.LookupTimeout)

	// Scheduler that periodically sweeps expired forecast memo entries.
	var sweeper scheduler.Sweeper
	if cfg.CacheMaxEntries > 0 {
		sweeper = forecaster
	}
	sched := scheduler.New(cfg.CacheSweepInterval, sweeper)
	if err := sched.Start(); err != nil {
		log.Errorf("failed to start scheduler: %v", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "aitime",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      "aitime",
			"model_loaded": forecaster.Loaded(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, cfg.StaticDir)

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Warnf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
