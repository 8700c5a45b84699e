package main

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"portfolio/app/internal/auth"
	"portfolio/app/internal/config"
	"portfolio/app/internal/content"
	appdb "portfolio/app/internal/db"
	apphttp "portfolio/app/internal/http"
	applog "portfolio/app/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "failure loading configuration")
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "failure initialising logger")
	}

	sentryHub, flush, err := applog.InitSentry(logger, applog.SentrySettings{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	if err != nil {
		return eris.Wrap(err, "failure initialising sentry")
	}
	defer flush()

	dbConn, err := appdb.Open(appdb.Options{Path: cfg.DBPath})
	if err != nil {
		return eris.Wrap(err, "opening database")
	}
	defer func() {
		if closeErr := appdb.Close(dbConn); closeErr != nil {
			logger.WithError(closeErr).Error("closing database")
		}
	}()

	if err := content.Migrate(ctx, dbConn, logger); err != nil {
		return eris.Wrap(err, "running migrations")
	}

	hasher := auth.NewPasswordHasher()
	adminHash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return eris.Wrap(err, "hashing admin password")
	}

	if err := content.EnsureAdmin(ctx, dbConn, cfg.AdminUsername, adminHash, logger); err != nil {
		return eris.Wrap(err, "seeding admin user")
	}

	repository, err := content.NewRepository(dbConn, logger)
	if err != nil {
		return eris.Wrap(err, "building content repository")
	}

	contentService, err := content.NewService(repository, logger, sentryHub)
	if err != nil {
		return eris.Wrap(err, "creating content service")
	}

	tokens, err := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return eris.Wrap(err, "creating token service")
	}

	authService, err := auth.NewService(repository, hasher, tokens, logger)
	if err != nil {
		return eris.Wrap(err, "creating auth service")
	}

	transport, err := apphttp.NewServer(apphttp.Options{
		ContentService: contentService,
		AuthService:    authService,
		Site:           cfg.Site,
		CookieSecure:   cfg.CookieSecure(),
		Database:       dbConn,
		Logger:         logger,
		SentryHub:      sentryHub,
	})
	if err != nil {
		return eris.Wrap(err, "initialising http transport")
	}

	httpServer := &stdhttp.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.ServerPort),
		Handler: transport.Handler(),
	}

	logger.WithFields(logrus.Fields{
		"addr": httpServer.Addr,
	}).Info("starting http server")

	serverErrCh := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			return eris.Wrap(err, "http server error")
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "shutting down http server")
	}

	return nil
}
