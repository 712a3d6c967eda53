// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/handball-record/internal/boxscore"
	"github.com/codr1/handball-record/internal/config"
	"github.com/codr1/handball-record/internal/db"
	"github.com/codr1/handball-record/internal/hub"
	"github.com/codr1/handball-record/internal/recorder"
	"github.com/codr1/handball-record/internal/scheduler"
)

const defaultConfigPath = "config.yaml"

func configPath() string {
	path := flag.String("config", "", "Path to the YAML configuration file")
	flag.Parse()
	if *path != "" {
		return *path
	}
	if env := os.Getenv("HANDBALL_CONFIG"); env != "" {
		return env
	}
	return defaultConfigPath
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// newBoxScoreMirror returns nil when Redis is not configured. An unreachable Redis is
// logged and still used; reads fall back to SQLite until it recovers.
func newBoxScoreMirror(ctx context.Context, cfg *config.Config) (boxscore.Mirror, func()) {
	client := boxscore.NewRedisClient(cfg.Cache)
	if client == nil {
		return nil, func() {}
	}

	mirror := boxscore.NewRedisMirror(client, cfg.Cache.TTL)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := mirror.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis not reachable, box score mirror degraded")
	} else {
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Box score mirror connected")
	}

	return mirror, func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("filename", cfg.Database.Filename).Msg("Failed to open database")
	}
	defer database.Close()

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mirror, closeMirror := newBoxScoreMirror(ctx, cfg)
	defer closeMirror()

	cache := boxscore.NewCache(database, mirror)
	liveHub := hub.New()
	rec := recorder.New(database, cache, liveHub, nil)

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	sched, err := scheduler.ServiceInstance()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get scheduler")
	}
	if _, err := scheduler.RegisterCacheRebuildJob(sched, cache, cfg.Scheduler.CacheRebuildCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cache rebuild job")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	g, ctx := errgroup.WithContext(ctx)

	server := newServer(cfg, serverDeps{
		ctx:      ctx,
		db:       database,
		recorder: rec,
		hub:      liveHub,
	})

	g.Go(func() error {
		liveHub.Run(ctx)
		return nil
	})

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Recorder.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		err := server.Shutdown(shutdownCtx)
		rec.Close()
		if serr := scheduler.Stop(); serr != nil {
			log.Error().Err(serr).Msg("Failed to stop scheduler")
		}
		if err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
