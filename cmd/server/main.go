// Package main runs the intranet HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/brt-intranet/backend/config"
	"github.com/brt-intranet/backend/internal/announcements"
	"github.com/brt-intranet/backend/internal/credentials"
	"github.com/brt-intranet/backend/internal/downloads"
	"github.com/brt-intranet/backend/internal/mailrelay"
	"github.com/brt-intranet/backend/internal/tickets"
	"github.com/brt-intranet/backend/pkg/database"
	"github.com/brt-intranet/backend/pkg/mail"
	"github.com/brt-intranet/backend/pkg/redis"
	"github.com/brt-intranet/backend/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		newLogger("info").Fatal("load config", zap.Error(err))
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Store: pooled, or one supervised session
	var (
		db      database.Querier
		closers []func() error
	)
	switch cfg.Database.Mode {
	case "single":
		session := database.NewSession(database.SessionConfig{
			DSN:                 cfg.Database.DSN(),
			ReconnectDelay:      time.Duration(cfg.Database.ReconnectDelaySec) * time.Second,
			HealthCheckInterval: time.Duration(cfg.Database.HealthCheckSec) * time.Second,
		}, logger)
		if err := session.Connect(ctx); err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		go session.Run(ctx)
		closers = append(closers, func() error { return session.Close(context.Background()) })
		db = session
	default:
		pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		closers = append(closers, func() error { pool.Close(); return nil })
		db = pool
	}

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Uploads: S3 when a bucket is configured, local disk otherwise
	var files storage.FileStore
	serveUploads := false
	if cfg.AWS.UploadsBucket != "" {
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.UploadsBucket,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled, keeping uploads on disk", zap.Error(err))
		} else {
			files = s3Store
		}
	}
	if files == nil {
		local, err := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix, logger)
		if err != nil {
			logger.Fatal("uploads", zap.Error(err))
		}
		files = local
		serveUploads = true
	}

	// Download catalog cache (optional)
	var cache downloads.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis unavailable, download cache disabled", zap.Error(err))
		} else {
			cache = downloads.NewRedisCache(rdb)
			closers = append(closers, rdb.Close)
		}
	}

	mailer, err := mail.NewSMTPMailer(mail.SMTPSettings{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPass,
		From:     cfg.Email.From,
		UseTLS:   cfg.Email.UseTLS,
		Timeout:  time.Duration(cfg.Email.TimeoutSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("smtp", zap.Error(err))
	}
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, mail relay requests will fail")
	}

	maxUpload := int64(cfg.Uploads.MaxMB) << 20

	// Announcements
	announcementRepo := announcements.NewRepository(db)
	announcementHandler := announcements.NewHandler(announcements.NewService(announcementRepo, logger))

	// Tickets
	ticketRepo := tickets.NewRepository(db)
	ticketHandler := tickets.NewHandler(tickets.NewService(ticketRepo, files, logger), maxUpload)

	// Downloads
	downloadRepo := downloads.NewRepository(db)
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	downloadHandler := downloads.NewHandler(downloads.NewService(downloadRepo, cache, cacheTTL, logger))

	// Login
	loginHandler := credentials.NewHandler(credentials.NewVerifier(cfg.Login), logger)

	// Mail relay
	relay := mailrelay.NewService(mailer, files, cfg.Email.From, config.SplitTrim(cfg.Email.To, ","), logger)
	mailHandler := mailrelay.NewHandler(relay, maxUpload)

	router := newRouter(cfg, handlers{
		announcements: announcementHandler,
		tickets:       ticketHandler,
		downloads:     downloadHandler,
		login:         loginHandler,
		mail:          mailHandler,
	}, serveUploads, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("db_mode", cfg.Database.Mode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	stop()

	var closeErr error
	for i := len(closers) - 1; i >= 0; i-- {
		closeErr = multierr.Append(closeErr, closers[i]())
	}
	if closeErr != nil {
		logger.Error("release resources", zap.Error(closeErr))
	}
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, _ := config.Build()
	return logger
}
