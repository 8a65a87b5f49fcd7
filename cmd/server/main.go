package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"school_transport/internal/config"
	"school_transport/internal/logger"
	"school_transport/internal/messaging"
	"school_transport/internal/metrics"
	"school_transport/internal/middleware"
	"school_transport/internal/routes"
	"school_transport/internal/services"
	"school_transport/internal/storage"
)

const shutdownTimeout = 20 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Initialize structured logging to file
	accessLog := logger.Setup(logger.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Console: !cfg.IsProduction(),
	})
	log := logger.Logger()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDatabase(cfg, log)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	metrics.MustRegister()

	dispatcher := messaging.NewDispatcher(log, cfg.DeliveryTimeout)
	emailSender, smsSender := newSenders(cfg, log)

	router, err := routes.SetupRouter(routes.Deps{
		Log:           log,
		AccessLog:     accessLog,
		Tokens:        middleware.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		Users:         services.NewUserService(db),
		Drivers:       services.NewDriverService(db),
		Trips:         services.NewTripService(db),
		Resets:        services.NewResetService(db, dispatcher, emailSender, smsSender, services.WithResetTTL(cfg.ResetCodeTTL)),
		Incidents:     services.NewIncidentService(db),
		Notifications: services.NewNotificationService(db),
		Dashboard:     services.NewDashboardService(db),
		Schools:       services.NewSchoolService(db),
		Store:         store,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s (%s)", srv.Addr, cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if err := dispatcher.Drain(ctx); err != nil {
		log.WithError(err).Warn("pending deliveries abandoned")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server stopped")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Store(context.Background(), storage.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	}
	return storage.NewLocalStore(cfg.UploadDir)
}

// newSenders builds the delivery channels, logging instead of sending for
// any channel without credentials.
func newSenders(cfg *config.Config, log *logrus.Logger) (email, sms messaging.Sender) {
	email = messaging.LogSender{Channel: messaging.ChannelEmail, Log: log}
	if cfg.EmailEnabled() {
		email = messaging.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	sms = messaging.LogSender{Channel: messaging.ChannelSMS, Log: log}
	if cfg.SMSEnabled() {
		sms = messaging.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom)
	}
	return email, sms
}
