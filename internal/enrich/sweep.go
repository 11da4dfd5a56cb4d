package enrich

import (
	"context"
	"time"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
)

// SweepResult summarizes one bulk enrichment pass.
type SweepResult struct {
	Attempted      int
	Enriched       int
	ConfirmedEmpty int
	Failed         int
}

// SweepAll enriches every recipe still awaiting ingredients. One upstream
// call per CallDelay, with a longer BatchPause every BatchSize recipes, so
// the upstream service is never hammered. Each recipe's result commits
// independently, so an interrupted sweep keeps everything enriched so far.
// Per-recipe failures are logged and skipped, never aborting the sweep.
func (e *Engine) SweepAll(ctx context.Context) SweepResult {
	log := logger.FromContext(ctx)
	var result SweepResult

	recipes, err := e.recipes.ListUnenrichedRecipes(ctx)
	if err != nil {
		log.Error(LogMsgListUnenrichedFailed, "error", err)
		return result
	}
	if len(recipes) == 0 {
		return result
	}

	log.Info(LogMsgSweepStarted, "pending", len(recipes))

	for i := range recipes {
		if i > 0 {
			if !e.pause(ctx, e.cfg.CallDelay) {
				log.Info(LogMsgSweepCancelled, "processed", result.Attempted)
				return result
			}
			if i%e.cfg.BatchSize == 0 {
				if !e.pause(ctx, e.cfg.BatchPause) {
					log.Info(LogMsgSweepCancelled, "processed", result.Attempted)
					return result
				}
			}
		}

		result.Attempted++
		status, err := e.EnrichRecipe(ctx, &recipes[i])
		switch {
		case err != nil:
			result.Failed++
			log.Warn(LogMsgSweepRecipeFailed, "recipe_id", recipes[i].RecipeID, "error", err)
		case status == domain.EnrichmentConfirmedEmpty:
			result.ConfirmedEmpty++
		default:
			result.Enriched++
		}
	}

	log.Info(LogMsgSweepCompleted,
		"attempted", result.Attempted,
		"enriched", result.Enriched,
		"confirmed_empty", result.ConfirmedEmpty,
		"failed", result.Failed)
	return result
}

// pause sleeps for the given duration unless the context is cancelled first.
// Returns false when the sweep should stop.
func (e *Engine) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
