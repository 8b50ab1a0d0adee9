package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/seasonal/ladder/internal/adapters/cache"
	"github.com/seasonal/ladder/internal/adapters/http/api"
	"github.com/seasonal/ladder/internal/adapters/repository"
	app "github.com/seasonal/ladder/internal/app"
	"github.com/seasonal/ladder/internal/config"
	"github.com/seasonal/ladder/pkg/logger"
	"github.com/seasonal/ladder/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	gaugeInterval     = 10 * time.Second
)

func main() {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		return
	}
	defer cleanup()

	standings, err := newStandingsCache(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to connect standings cache", logger.Error(err))
		return
	}
	defer func() {
		if err := standings.Close(); err != nil {
			log.Warn(ctx, "standings cache close failed", logger.Error(err))
		}
	}()

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithStandingsCache(standings),
	)

	// Keep the scale gauges fresh in the background.
	go startGaugeUpdater(ctx, store)

	r := chi.NewRouter()
	api.NewServer(svc, cfg.JWTSecret).Register(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// newStore opens the configured persistence backend.
func newStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := repository.NewPostgresStore(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return repository.NewMemStore(), func() {}, nil
	}
}

// newStandingsCache connects Redis when the cache is enabled.
func newStandingsCache(ctx context.Context, cfg *config.Config) (cache.Standings, error) {
	if !cfg.CacheEnabled {
		return cache.NewNoop(), nil
	}
	return cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
		cache.WithTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second))
}

// startGaugeUpdater refreshes the player and season count gauges.
func startGaugeUpdater(ctx context.Context, store repository.Store) {
	ticker := time.NewTicker(gaugeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateGauges(ctx, store)
		}
	}
}

func updateGauges(ctx context.Context, store repository.Store) {
	if players, err := store.Players(ctx); err == nil {
		metrics.UpdateTotalPlayers(len(players))
	}
	if seasons, err := store.Seasons(ctx); err == nil {
		metrics.UpdateTotalSeasons(len(seasons))
	}
}
