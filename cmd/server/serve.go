package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"boardshelf/backend/internal/bgg"
	"boardshelf/backend/internal/config"
	"boardshelf/backend/internal/handler"
	"boardshelf/backend/internal/hub"
	"boardshelf/backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			gin.SetMode(cfg.GinMode)

			db, err := ctx.database(cfg, logger)
			if err != nil {
				return err
			}

			cache, closeCache, err := lookupCache(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeCache()

			lookup := bgg.New(cfg.BGGBaseURL, cfg.BGGTimeout, cache, cfg.BGGCacheTTL, logger)
			h := handler.New(cfg, store.New(db), lookup, hub.New(), logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(runCtx, fmt.Sprintf(":%d", cfg.Port), h.Router(), logger)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides PORT)")
	return cmd
}

// lookupCache picks Redis when REDIS_URL is set and falls back to memory.
func lookupCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (bgg.Cache, func(), error) {
	if cfg.RedisURL == "" {
		return bgg.NewMemoryCache(), func() {}, nil
	}
	rc, err := bgg.NewRedisCache(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("REDIS_URL: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory lookup cache", slog.Any("err", err))
		_ = rc.Close()
		return bgg.NewMemoryCache(), func() {}, nil
	}
	logger.Info("lookup cache connected to redis")
	return rc, func() { _ = rc.Close() }, nil
}

func serve(ctx context.Context, addr string, router http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", slog.String("addr", addr))
		logger.Info("swagger UI is available", slog.String("path", "/swagger/index.html"))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
