package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/shim/internal/api"
	"github.com/terraincognita07/shim/internal/clients/kma"
	"github.com/terraincognita07/shim/internal/clients/seoulair"
	"github.com/terraincognita07/shim/internal/clients/upstage"
	"github.com/terraincognita07/shim/internal/config"
	"github.com/terraincognita07/shim/internal/db"
	"github.com/terraincognita07/shim/internal/logger"
	"github.com/terraincognita07/shim/internal/security"
	"github.com/terraincognita07/shim/internal/services"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 10 * time.Second
	minLanguageTimeout = 30 * time.Second
)

func newServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configDir)
		},
	}
}

func runServe(ctx context.Context, configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if err := validateSecret(cfg); err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Mode: cfg.AppEnv, FilePath: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer log.Sync()

	location, known := cfg.Location()
	if !known {
		log.Warn("unknown TZ, falling back to UTC", "tz", cfg.Timezone)
	}
	time.Local = location
	if cfg.EphemeralSecret {
		log.Warn("SECRET_KEY not set, issued tokens will not survive a restart")
	}

	database, err := db.Open(db.Options{Driver: cfg.DBDriver, Path: cfg.DBPath, DSN: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	app, err := newApp(cfg, database, location, log)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("shim listening", "addr", "0.0.0.0:"+cfg.Port, "db_driver", cfg.DBDriver, "tz", location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func validateSecret(cfg config.Config) error {
	if cfg.IsProduction() && cfg.EphemeralSecret {
		return errInsecureSecret
	}
	if len(cfg.SecretKey) < security.MinSecretKeyLength {
		return errInsecureSecret
	}
	return nil
}

// newApp wires repositories, upstream clients and services into a fiber app.
// Providers without an API key stay unset so their fallbacks apply.
func newApp(cfg config.Config, database *gorm.DB, location *time.Location, log *logger.Logger) (*fiber.App, error) {
	repos := db.NewRepositories(database)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var air services.AirQualityProvider
	if cfg.SeoulAirAPIKey != "" {
		air = seoulair.New(cfg.SeoulAirAPIKey, seoulair.Options{HTTPClient: httpClient, CacheTTL: cfg.AirQualityCacheTTL})
	} else {
		log.Warn("SEOUL_AIR_API_KEY not set, air quality uses fallback values")
	}

	var conditions services.WeatherConditionProvider
	if cfg.KMAAPIKey != "" {
		conditions = kma.New(cfg.KMAAPIKey, kma.Options{HTTPClient: httpClient, Location: location})
	} else {
		log.Warn("KMA_API_KEY not set, weather uses fallback values")
	}

	var model services.LanguageModelClient
	languageTimeout := cfg.HTTPTimeout
	if languageTimeout < minLanguageTimeout {
		languageTimeout = minLanguageTimeout
	}
	client, err := upstage.New(cfg.UpstageAPIKey, upstage.Options{
		BaseURL:    cfg.UpstageBaseURL,
		Model:      cfg.UpstageModel,
		HTTPClient: &http.Client{Timeout: languageTimeout},
	})
	switch {
	case err == nil:
		model = client
	case errors.Is(err, upstage.ErrMissingAPIKey):
		log.Warn("UPSTAGE_API_KEY not set, prescriptions use templates")
	default:
		return nil, err
	}

	weather := services.NewWeatherService(air, conditions, repos.WeatherLogs, log)
	prescriber := services.NewPrescriptionService(model, repos.Prescriptions, log)
	records := services.NewRecordService(services.RecordServiceDeps{
		Users:         repos.Users,
		Records:       repos.Records,
		Prescriptions: repos.Prescriptions,
		WeatherLogs:   repos.WeatherLogs,
		Weather:       weather,
		Prescriber:    prescriber,
		Location:      location,
		Logger:        log,
	})

	handler, err := api.NewHandler(api.Dependencies{
		Auth:      services.NewAuthService(repos.Users),
		Users:     services.NewUserService(repos.Users, repos.Records),
		Records:   records,
		Weather:   weather,
		SecretKey: cfg.SecretKey,
		Location:  location,
		Logger:    log,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Shim",
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)
	return app, nil
}
