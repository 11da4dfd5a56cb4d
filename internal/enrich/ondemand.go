package enrich

import (
	"context"
	"time"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/metrics"
)

// EnsureEnriched returns the recipe with ingredients when enrichment can
// complete within the on-demand bound, and the unenriched recipe otherwise.
// On timeout the enrichment is not cancelled: it detaches and finishes its
// cache write in the background so a subsequent read benefits. The returned
// recipe is always valid.
func (e *Engine) EnsureEnriched(ctx context.Context, recipe *domain.Recipe) *domain.Recipe {
	if recipe == nil || !recipe.NeedsEnrichment() {
		return recipe
	}

	log := logger.FromContext(ctx)

	// The work must outlive the caller's deadline, so it runs on a context
	// that keeps the request values but not its cancellation.
	detached := context.WithoutCancel(ctx)

	done := make(chan error, 1)
	go func() {
		_, err := e.EnrichRecipe(detached, recipe)
		if e.cfg.CompletionHook != nil {
			e.cfg.CompletionHook(recipe.RecipeID, err)
		}
		done <- err
	}()

	timer := time.NewTimer(e.cfg.OnDemandTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return recipe
		}
		enriched, err := e.recipes.GetRecipeByRecipeID(ctx, recipe.RecipeID)
		if err != nil {
			log.Warn(LogMsgReloadAfterEnrichFailed, "recipe_id", recipe.RecipeID, "error", err)
			return recipe
		}
		return enriched
	case <-timer.C:
		metrics.EnrichmentsDetached.Inc()
		log.Info(LogMsgEnrichmentDetached, "recipe_id", recipe.RecipeID)
		return recipe
	}
}
