package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamersdb/backend/docs" // This is important for swag to find the generated docs

	"gamersdb/backend/internal/config"
	"gamersdb/backend/internal/factory"
	"gamersdb/backend/internal/router"
)

// @title           GamersDB API
// @version         1.0
// @description     Catalog of the games a group owns, and which of them the group can play together.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := factory.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open catalog store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close catalog store", slog.String("error", err.Error()))
		}
	}()

	r := router.Setup(router.Config{
		Catalog:        app.Catalog,
		Hub:            app.Hub,
		Logger:         logger,
		AllowedOrigins: cfg.Origins(),
		StaticDir:      cfg.StaticDir,
	})

	srv := newServer(ctx, cfg.Addr(), r)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			slog.String("addr", srv.Addr),
			slog.String("swagger", "/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
		return
	}

	logger.Info("server stopped")
}

// newServer builds the HTTP server. Request contexts derive from ctx, so
// long-lived requests such as event streams end once ctx is cancelled.
func newServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
}
