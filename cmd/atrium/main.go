package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quorali/atrium/pkg/api"
	"github.com/quorali/atrium/pkg/auth"
	"github.com/quorali/atrium/pkg/config"
	"github.com/quorali/atrium/pkg/directory/postgres"
	"github.com/quorali/atrium/pkg/middleware"
	"github.com/quorali/atrium/pkg/observability"
	"github.com/quorali/atrium/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, os.Stderr).
			WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, os.Stdout)
	logger.Info("starting up")

	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.WithError(err).Error("failed to open database")
		os.Exit(1)
	}
	defer db.Close()

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	codec := auth.NewTokenCodec(cfg.Token.Secret, cfg.Token.TTL, logger)

	users := postgres.NewUserStore(db)
	tenants := postgres.NewTenantStore(db)
	permissions := postgres.NewPermissionStore(db)
	credentials := postgres.NewCredentialStore(db)

	resolver := middleware.NewSessionResolver(codec, users, tenants, permissions, logger, metrics)
	gate := middleware.NewPermissionGate(logger, metrics)
	sessionHandlers := session.NewHandlers(codec, credentials, users, tenants, logger, metrics)

	server := api.NewServer(resolver, gate, sessionHandlers, tenants, tenants, permissions, logger, metrics)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.WithField("addr", addr).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}
