package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pandamonium-Gaming/PandaBot/internal/catalog"
	"github.com/Pandamonium-Gaming/PandaBot/internal/codex"
	"github.com/Pandamonium-Gaming/PandaBot/internal/config"
	"github.com/Pandamonium-Gaming/PandaBot/internal/database"
	"github.com/Pandamonium-Gaming/PandaBot/internal/database/postgres"
	"github.com/Pandamonium-Gaming/PandaBot/internal/enrich"
	"github.com/Pandamonium-Gaming/PandaBot/internal/materials"
	"github.com/Pandamonium-Gaming/PandaBot/internal/refresh"
	"github.com/Pandamonium-Gaming/PandaBot/internal/repository"
	"github.com/Pandamonium-Gaming/PandaBot/internal/scheduler"
	"github.com/Pandamonium-Gaming/PandaBot/internal/server"
	"github.com/Pandamonium-Gaming/PandaBot/internal/worker"
)

const shutdownTimeout = 15 * time.Second

// catalogStore aggregates the item and recipe stores behind the catalog's
// read interface.
type catalogStore struct {
	repository.Item
	repository.Recipe
}

// cacheCounts aggregates record counts across the three stores for the
// admin stats endpoint.
type cacheCounts struct {
	repository.Item
	repository.Recipe
	repository.Mob
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connString := cfg.GetDBConnString()
	if err := database.Migrate(ctx, connString); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(connString, 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	itemRepo := postgres.NewItemRepository(dbPool)
	recipeRepo := postgres.NewRecipeRepository(dbPool)
	mobRepo := postgres.NewMobRepository(dbPool)

	codexClient := codex.NewClient(codex.Config{
		BaseURL:       cfg.CodexBaseURL,
		BulkTimeout:   cfg.CodexBulkTimeout,
		DetailTimeout: cfg.CodexDetailTimeout,
	})

	enrichEngine := enrich.NewEngine(codexClient, recipeRepo, itemRepo, enrich.Config{
		OnDemandTimeout: cfg.EnrichOnDemandTimeout,
		CallDelay:       cfg.EnrichCallDelay,
		BatchSize:       cfg.EnrichBatchSize,
		BatchPause:      cfg.EnrichBatchPause,
	})

	resolver := materials.NewResolver(recipeRepo, cfg.ResolverMaxDepth)

	catalogService := catalog.NewService(catalogStore{itemRepo, recipeRepo}, enrichEngine, resolver, cfg.LookupCacheSize, cfg.LookupCacheTTL)

	refreshJob := refresh.NewJob(codexClient, itemRepo, recipeRepo, mobRepo, enrichEngine, catalogService)

	workerPool := worker.NewPool(2, 10)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.RefreshInterval, refreshJob)

	// Populate the cache on startup without delaying readiness
	workerPool.Enqueue(refreshJob)

	counter := cacheCounts{itemRepo, recipeRepo, mobRepo}
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, catalogService, mobRepo, workerPool, refreshJob, counter)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	sched.Stop()
	workerPool.Stop()
	cancel()

	slog.Info("Server stopped")
}
