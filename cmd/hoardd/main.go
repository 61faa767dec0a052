// Command hoardd runs a hoard cache engine behind its HTTP boundary.
// Configuration comes from HOARD_* environment variables; see the config
// package for the full list and defaults.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hoardcache/hoard"
	"github.com/hoardcache/hoard/config"
	asynchook "github.com/hoardcache/hoard/hooks/async"
	"github.com/hoardcache/hoard/httpapi"
	zaplog "github.com/hoardcache/hoard/log/zap"
	"github.com/hoardcache/hoard/loghooks"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger := zap.Must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()

	hooks := asynchook.New(
		loghooks.New(slog.Default(), loghooks.Options{EvictEvery: 16, ExpireEvery: 16}),
		1, 1024)
	defer hooks.Close()

	cache, err := hoard.New(hoard.Options{
		MaxBytes:      cfg.MaxBytes,
		MaxValueBytes: cfg.MaxValueBytes,
		ReapInterval:  cfg.ReapInterval,
		EvictInterval: cfg.EvictInterval,
		Shards:        cfg.Shards,
		Logger:        zaplog.ZapLogger{L: logger},
		Hooks:         hooks,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.New(cache, httpapi.Options{
			MaxPayloadBytes: cfg.MaxValueBytes,
			Logger:          zaplog.ZapLogger{L: logger},
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("hoardd listening",
			zap.String("addr", cfg.Addr),
			zap.Int64("max_bytes", cfg.MaxBytes),
			zap.Int("shards", cfg.Shards))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logger.Warn("http shutdown", zap.Error(err))
		}
		// Engine last: the boundary has stopped producing traffic.
		return cache.Close(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("hoardd exited", zap.Error(err))
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
