package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devevents/config"
	"devevents/internal/adapters/auth"
	"devevents/internal/adapters/email"
	"devevents/internal/adapters/rabbitmq"
	"devevents/internal/adapters/upload"
	"devevents/internal/database"
	delivery "devevents/internal/delivery/http"
	"devevents/internal/delivery/http/controllers"
	"devevents/internal/domain"
	"devevents/internal/repository/postgres"
	"devevents/internal/services"
)

// @title DevEvents API
// @version 1.0
// @description Event catalog and booking API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := database.NewManager(database.PostgresOpener(database.Config{
		URL:             cfg.DB.URL,
		ConnectTimeout:  cfg.DB.ConnectTimeout,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		Migrate:         cfg.DB.Migrate,
	}), logger)
	defer func() { _ = manager.Close() }()

	// A failed warm-up is not fatal: the next request retries the connection.
	if _, err := manager.Acquire(ctx); err != nil {
		logger.Warn("database not reachable at startup", "err", err)
	}

	// Repositories
	eventRepo := postgres.NewEventRepository(manager)
	bookingRepo := postgres.NewBookingRepository(manager)

	// Adapters
	var publisher domain.Publisher = rabbitmq.NoopPublisher{Logger: logger}
	if cfg.AMQP.URL != "" {
		producer := rabbitmq.NewProducer(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err := producer.Open(); err != nil {
			logger.Error("failed to open amqp producer", "err", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = producer
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mailer.SESRegion,
			AccessKeyID:        cfg.Mailer.SESAccessKeyID,
			SecretAccessKey:    cfg.Mailer.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Mailer.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	var uploader domain.ImageUploader
	if cfg.Upload.CloudName != "" {
		uploader = upload.NewHTTPUploader(&http.Client{Timeout: cfg.Upload.Timeout}, upload.Config{
			BaseURL:      cfg.Upload.BaseURL,
			CloudName:    cfg.Upload.CloudName,
			UploadPreset: cfg.Upload.UploadPreset,
			Folder:       cfg.Upload.Folder,
		})
	} else {
		logger.Warn("UPLOAD_CLOUD_NAME not set, multipart event creation disabled")
	}

	var verifier domain.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set, organizer routes are unauthenticated")
	}

	// Services
	eventService := services.NewEventService(eventRepo, publisher, logger, cfg.RequestTimeout)
	bookingValidator := services.NewBookingValidator(eventService)
	bookingService := services.NewBookingService(bookingRepo, bookingValidator, eventService,
		emailService, publisher, logger, cfg.RequestTimeout)

	router := delivery.NewRouter(delivery.RouterConfig{
		Logger:         logger,
		Events:         controllers.NewEventController(logger, eventService, uploader, cfg.Upload.MaxBytes),
		Bookings:       controllers.NewBookingController(logger, bookingService),
		Health:         controllers.NewHealthController(logger, manager),
		Verifier:       verifier,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
	logger.Info("server exited")
}
