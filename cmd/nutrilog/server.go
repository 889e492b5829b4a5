package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/nutrilog/internal/api"
	"github.com/terraincognita07/nutrilog/internal/config"
	"github.com/terraincognita07/nutrilog/internal/db"
	"github.com/terraincognita07/nutrilog/internal/events"
	"github.com/terraincognita07/nutrilog/internal/i18n"
	"github.com/terraincognita07/nutrilog/internal/logging"
	"github.com/terraincognita07/nutrilog/internal/services"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	app     *fiber.App
	closers []io.Closer
}

func (srv *server) Close() {
	for index := len(srv.closers) - 1; index >= 0; index-- {
		_ = srv.closers[index].Close()
	}
}

func runServer(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(cfg.Log, os.Stdout)

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port": cfg.Server.Port,
		"db":   cfg.Database.Path,
		"tz":   cfg.Server.Timezone,
	}).Info("nutrilog listening")
	if err := srv.app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// newServer wires storage, events and services behind the fiber app. An
// unreachable broker downgrades to a no-op publisher.
func newServer(cfg config.Config, logger *logrus.Logger) (*server, error) {
	if err := config.ValidateSecretKey(cfg.Auth.SecretKey); err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Warn("falling back to UTC")
	}

	database, err := db.OpenSQLite(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	srv := &server{closers: []io.Closer{sqlDB}}

	publisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, logger)
	if err != nil {
		logger.WithError(err).Warn("event publishing disabled")
		publisher = events.NoopPublisher{}
	}
	srv.closers = append(srv.closers, publisher)

	i18nManager, err := i18n.NewEmbeddedManager(cfg.I18n.DefaultLanguage)
	if err != nil {
		srv.Close()
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	store := services.NewEntryStore(db.NewRepositories(database).KeyValues, logger)
	handler, err := api.NewHandler(cfg.Auth.SecretKey, location, api.Dependencies{
		Journal:  services.NewJournalService(store, publisher),
		Profiles: services.NewProfileService(store, publisher),
		Stats:    services.NewStatsService(store),
		I18n:     i18nManager,
		Logger:   logger,
	})
	if err != nil {
		srv.Close()
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	requestLog := logger.Writer()
	srv.closers = append(srv.closers, requestLog)

	app := fiber.New(fiber.Config{
		AppName:               "Nutrilog",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: requestLog}))
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	srv.app = app
	return srv, nil
}
