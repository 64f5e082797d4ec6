// Command driftgate serves a configured storage backend over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driftfs/driftfs/internal/gateway"
	"github.com/driftfs/driftfs/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg := gateway.DefaultConfig()
	if *configPath != "" {
		loaded, err := gateway.LoadConfig(*configPath)
		if err != nil {
			bootLog := logger.New(nil)
			bootLog.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs, err := gateway.OpenStorage(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open storage backend")
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           gateway.NewServer(fs, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("listen", cfg.Listen).
		Str("driver", cfg.Storage.Driver).
		Msg("gateway starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("gateway stopped")
}
