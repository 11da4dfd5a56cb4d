// Package refresh implements the periodic full re-fetch of the upstream
// codex: bulk ingestion of items, recipes, and mobs, followed by a
// rate-limited enrichment sweep over recipes still missing ingredients.
package refresh

import (
	"context"
	"time"

	"github.com/Pandamonium-Gaming/PandaBot/internal/codex"
	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/enrich"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/metrics"
)

// Fetcher retrieves bulk records from the upstream codex API
type Fetcher interface {
	FetchItems(ctx context.Context) []domain.Item
	FetchRecipes(ctx context.Context) []domain.Recipe
	FetchMobs(ctx context.Context) []domain.Mob
}

// ItemStore persists item records
type ItemStore interface {
	UpsertItem(ctx context.Context, item *domain.Item) error
}

// RecipeStore persists recipe records
type RecipeStore interface {
	UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error
}

// MobStore persists mob records
type MobStore interface {
	UpsertMob(ctx context.Context, mob *domain.Mob) error
}

// Sweeper drives the post-ingest enrichment pass
type Sweeper interface {
	SweepAll(ctx context.Context) enrich.SweepResult
}

// CacheInvalidator drops read-side caches after a refresh lands
type CacheInvalidator interface {
	InvalidateCache()
}

// Job is a worker.Job that performs one full refresh cycle
type Job struct {
	fetcher     Fetcher
	items       ItemStore
	recipes     RecipeStore
	mobs        MobStore
	sweeper     Sweeper
	invalidator CacheInvalidator
}

// NewJob creates a refresh job
func NewJob(fetcher Fetcher, items ItemStore, recipes RecipeStore, mobs MobStore, sweeper Sweeper, invalidator CacheInvalidator) *Job {
	return &Job{
		fetcher:     fetcher,
		items:       items,
		recipes:     recipes,
		mobs:        mobs,
		sweeper:     sweeper,
		invalidator: invalidator,
	}
}

// Process runs one refresh cycle. Upstream failures surface as zero-record
// fetches and per-record upsert errors are logged and skipped, so a cycle
// never aborts halfway; the previous cache contents stay serveable.
func (j *Job) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	start := time.Now()
	log.Info(LogMsgRefreshStarting)

	failed := 0
	failed += j.ingestItems(ctx)
	failed += j.ingestRecipes(ctx)
	failed += j.ingestMobs(ctx)

	sweep := j.sweeper.SweepAll(ctx)

	if j.invalidator != nil {
		j.invalidator.InvalidateCache()
	}

	outcome := metrics.OutcomeOK
	if failed > 0 {
		outcome = metrics.OutcomeError
	}
	metrics.RefreshRuns.WithLabelValues(outcome).Inc()

	log.Info(LogMsgRefreshCompleted,
		"duration", time.Since(start).String(),
		"upsert_failures", failed,
		"sweep_attempted", sweep.Attempted,
		"sweep_enriched", sweep.Enriched,
		"sweep_confirmed_empty", sweep.ConfirmedEmpty,
		"sweep_failed", sweep.Failed)
	return nil
}

func (j *Job) ingestItems(ctx context.Context) int {
	log := logger.FromContext(ctx)
	failed := 0
	for _, item := range j.fetcher.FetchItems(ctx) {
		if err := j.items.UpsertItem(ctx, &item); err != nil {
			log.Error(LogMsgUpsertFailed, "resource", codex.ResourceItems, "item_id", item.ItemID, "error", err)
			failed++
			continue
		}
		metrics.RecordsUpserted.WithLabelValues(codex.ResourceItems).Inc()
	}
	return failed
}

func (j *Job) ingestRecipes(ctx context.Context) int {
	log := logger.FromContext(ctx)
	failed := 0
	for _, recipe := range j.fetcher.FetchRecipes(ctx) {
		if err := j.recipes.UpsertRecipe(ctx, &recipe); err != nil {
			log.Error(LogMsgUpsertFailed, "resource", codex.ResourceRecipes, "recipe_id", recipe.RecipeID, "error", err)
			failed++
			continue
		}
		metrics.RecordsUpserted.WithLabelValues(codex.ResourceRecipes).Inc()
	}
	return failed
}

func (j *Job) ingestMobs(ctx context.Context) int {
	log := logger.FromContext(ctx)
	failed := 0
	for _, mob := range j.fetcher.FetchMobs(ctx) {
		if err := j.mobs.UpsertMob(ctx, &mob); err != nil {
			log.Error(LogMsgUpsertFailed, "resource", codex.ResourceMobs, "mob_id", mob.MobID, "error", err)
			failed++
			continue
		}
		metrics.RecordsUpserted.WithLabelValues(codex.ResourceMobs).Inc()
	}
	return failed
}
