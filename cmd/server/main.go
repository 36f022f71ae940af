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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	simcore "github.com/aisimcore/simcore"
	"github.com/aisimcore/simcore/internal/domain"
	"github.com/aisimcore/simcore/internal/domain/simerr"
	"github.com/aisimcore/simcore/internal/ecs"
	"github.com/aisimcore/simcore/internal/infrastructure/eventfeed"
	"github.com/aisimcore/simcore/internal/infrastructure/obslog"
	"github.com/aisimcore/simcore/internal/infrastructure/simconfig"
	"github.com/aisimcore/simcore/internal/persona"
	"github.com/aisimcore/simcore/internal/planning"
	"github.com/aisimcore/simcore/internal/spatial"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to a YAML config overlay")
		eventFeedAddr = flag.String("event-feed-addr", "", "Debug event feed listen address (overrides config)")
	)
	flag.Parse()

	cfg, err := simconfig.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}
	if *eventFeedAddr != "" {
		cfg.EventFeedAddr = *eventFeedAddr
	}

	logger := obslog.Setup(cfg.LogLevel)
	logger.Info().
		Str("event_feed_addr", cfg.EventFeedAddr).
		Float64("tick_rate_hz", cfg.TickRateHz).
		Msg("starting simcore engine")

	ctx := context.Background()

	store := buildProfileStore(ctx, cfg, logger)

	partition := spatial.NewPartition(
		cfg.CellSize,
		spatial.NewManager(noopLoader{}, cfg.CellSize, cfg.ActivationRadius, 4, 64),
		spatial.NewGPUResourceBudget(cfg.GPUMemoryBudgetBytes),
	)

	registry := simcore.NewDefaultRegistry(simcore.NewDefaultGoals())
	registry.Register(planning.ModeBehaviorTree, planning.NewUtilityPlanner())

	// NewEngine allocates its own fresh World, so the focus entity
	// handed to it is the deterministic first Spawn of that allocator
	// (id 0, generation 0) — spawned for real just below, once the
	// engine (and therefore its World) exists.
	provisionalFocus := ecs.Entity{}
	engine := simcore.NewEngine(
		provisionalFocus,
		planning.Controller{Mode: planning.ModeRule},
		registry,
		simcore.WithPartition(partition),
		simcore.WithTimestep(1.0/cfg.TickRateHz),
	)

	focus := engine.World().Allocator.Spawn()
	ecs.Insert(engine.World(), focus, domain.Objective{Text: "engage"})

	companion, err := loadOrCreateProfile(ctx, store, "companion-"+focus.String())
	if err != nil {
		logger.Error().Err(err).Msg("failed to load companion profile")
		os.Exit(1)
	}
	ecs.SetResource(engine.World(), companion)

	telemetry := planning.NewTelemetry()

	hub := eventfeed.NewHub(logger)
	go hub.Run()

	auth := eventfeed.NewJWTAuth(cfg.EventFeedSecret)
	handler := eventfeed.NewHandler(hub, auth, logger)

	streamingObserver := eventfeed.NewStreamingObserver(hub)
	telemetryObserver := eventfeed.NewTelemetryObserver(hub)

	feedCtx, cancelFeed := context.WithCancel(ctx)
	defer cancelFeed()
	go streamingObserver.Run(feedCtx, partition.Manager)
	go telemetryObserver.Run(feedCtx, telemetry, 2*time.Second)

	mux := http.NewServeMux()
	mux.Handle("/feed", handler)

	httpServer := &http.Server{
		Addr:         cfg.EventFeedAddr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", httpServer.Addr).Msg("event feed listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("event feed server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	cancelFeed()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("event feed server forced to shutdown")
		os.Exit(1)
	}

	logger.Info().Msg("shutdown complete")
}

// loadOrCreateProfile fetches id from store, seeding a fresh default
// profile on first run (simerr.CodeNotFound) rather than treating a
// cold store as an error.
func loadOrCreateProfile(ctx context.Context, store persona.Store, id string) (*persona.Profile, error) {
	p, err := store.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !simerr.Is(err, simerr.CodeNotFound) {
		return nil, err
	}

	fresh := persona.NewDefault(id)
	if saveErr := store.Save(ctx, fresh); saveErr != nil {
		return nil, saveErr
	}
	return fresh, nil
}

func buildProfileStore(ctx context.Context, cfg *simconfig.Config, logger zerolog.Logger) persona.Store {
	if cfg.DatabaseDSN == "" {
		logger.Info().Msg("no database_dsn configured, using in-memory profile store")
		return persona.NewMemoryStore()
	}

	bunStore := persona.NewBunStore(cfg.DatabaseDSN)
	if err := bunStore.InitSchema(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to initialize companion profile schema, falling back to in-memory store")
		return persona.NewMemoryStore()
	}
	logger.Info().Msg("using Postgres-backed companion profile store")
	return bunStore
}

// noopLoader is the default CellLoader wired when a game hasn't
// supplied its own: cells "load" instantly with a nil payload. Games
// that stream real per-cell content (meshes, nav data, AI zones)
// provide their own spatial.CellLoader to spatial.NewManager instead.
type noopLoader struct{}

func (noopLoader) Load(_ context.Context, _ spatial.GridCoord) (any, error) { return nil, nil }
func (noopLoader) Unload(_ spatial.GridCoord, _ any)                        {}
