// Package enrich fills in recipe ingredient lists after bulk ingestion. The
// upstream API exposes "what recipes create me" on the item resource, so
// enrichment fetches the output item's detail payload rather than anything
// keyed by the recipe itself.
package enrich

import (
	"context"
	"errors"
	"time"

	"github.com/Pandamonium-Gaming/PandaBot/internal/codex"
	"github.com/Pandamonium-Gaming/PandaBot/internal/concurrency"
	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/metrics"
	"github.com/Pandamonium-Gaming/PandaBot/internal/rawdoc"
)

// Sentinel errors
var (
	ErrUpstreamUnavailable = errors.New("upstream item detail unavailable")
	ErrNoOutputItem        = errors.New("recipe has no output item")
)

// ItemDetailFetcher is the upstream access the engine needs.
type ItemDetailFetcher interface {
	FetchItemDetail(ctx context.Context, itemID string) (rawdoc.Doc, bool)
}

// RecipeStore is the recipe persistence the engine needs.
type RecipeStore interface {
	ReplaceIngredients(ctx context.Context, recipeID string, ingredients []domain.RecipeIngredient, status domain.EnrichmentStatus) error
	GetRecipeByRecipeID(ctx context.Context, recipeID string) (*domain.Recipe, error)
	ListUnenrichedRecipes(ctx context.Context) ([]domain.Recipe, error)
}

// ItemStore is the item persistence used to cache ingredient details.
type ItemStore interface {
	UpsertItem(ctx context.Context, item *domain.Item) error
}

// Config carries the engine's timing knobs. They are explicit constructor
// inputs rather than package constants so tests can shrink them.
type Config struct {
	// OnDemandTimeout bounds how long an interactive caller waits before the
	// enrichment is detached to the background.
	OnDemandTimeout time.Duration
	// CallDelay is the pause between upstream calls during a bulk sweep.
	CallDelay time.Duration
	// BatchSize is how many recipes the sweep processes before the longer pause.
	BatchSize int
	// BatchPause is the longer pause inserted every BatchSize recipes.
	BatchPause time.Duration
	// CompletionHook, when set, is invoked after every enrichment attempt has
	// finished writing (or failing to write) its result. Tests use it to
	// await detached work deterministically.
	CompletionHook func(recipeID string, err error)
}

// Engine resolves recipe ingredients from upstream item detail payloads.
type Engine struct {
	fetcher ItemDetailFetcher
	recipes RecipeStore
	items   ItemStore
	locks   *concurrency.LockManager
	cfg     Config
}

// NewEngine creates an enrichment engine.
func NewEngine(fetcher ItemDetailFetcher, recipes RecipeStore, items ItemStore, cfg Config) *Engine {
	if cfg.OnDemandTimeout <= 0 {
		cfg.OnDemandTimeout = 5 * time.Second
	}
	if cfg.CallDelay <= 0 {
		cfg.CallDelay = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.BatchPause <= 0 {
		cfg.BatchPause = 5 * time.Second
	}
	return &Engine{
		fetcher: fetcher,
		recipes: recipes,
		items:   items,
		locks:   concurrency.NewLockManager(),
		cfg:     cfg,
	}
}

// EnrichRecipe fetches the output item's detail and replaces the recipe's
// ingredient rows. The returned status reflects what was written:
// EnrichmentEnriched or EnrichmentConfirmedEmpty on success,
// EnrichmentUnattempted (with an error) when nothing could be determined.
func (e *Engine) EnrichRecipe(ctx context.Context, recipe *domain.Recipe) (domain.EnrichmentStatus, error) {
	log := logger.FromContext(ctx)

	if recipe.OutputItemID == "" {
		return domain.EnrichmentUnattempted, ErrNoOutputItem
	}

	// Serialize per recipe so a sweep and an on-demand read racing on the
	// same recipe do not both hit upstream.
	lock := e.locks.GetLock(recipe.RecipeID)
	lock.Lock()
	defer lock.Unlock()

	if current, err := e.recipes.GetRecipeByRecipeID(ctx, recipe.RecipeID); err == nil && !current.NeedsEnrichment() {
		return current.EnrichmentStatus, nil
	}

	doc, ok := e.fetcher.FetchItemDetail(ctx, recipe.OutputItemID)
	if !ok {
		metrics.Enrichments.WithLabelValues(metrics.OutcomeFailed).Inc()
		return domain.EnrichmentUnattempted, ErrUpstreamUnavailable
	}

	ingredients, confirmed := ingredientsFromItemDetail(ctx, doc, recipe.RecipeID)
	if !confirmed {
		// Upstream answered but the payload shape gave us nothing to trust;
		// leave the recipe retryable.
		metrics.Enrichments.WithLabelValues(metrics.OutcomeFailed).Inc()
		return domain.EnrichmentUnattempted, ErrUpstreamUnavailable
	}

	status := domain.EnrichmentEnriched
	if len(ingredients) == 0 {
		// Upstream confirmed there are no inputs: distinguishable from
		// "enrichment has not succeeded yet", so it is never retried.
		status = domain.EnrichmentConfirmedEmpty
	}

	if err := e.recipes.ReplaceIngredients(ctx, recipe.RecipeID, ingredients, status); err != nil {
		log.Error(LogMsgPersistIngredientsFailed, "recipe_id", recipe.RecipeID, "error", err)
		metrics.Enrichments.WithLabelValues(metrics.OutcomeFailed).Inc()
		return domain.EnrichmentUnattempted, err
	}

	if status == domain.EnrichmentEnriched {
		metrics.Enrichments.WithLabelValues(metrics.OutcomeEnriched).Inc()
		e.cacheIngredientItems(ctx, ingredients)
	} else {
		metrics.Enrichments.WithLabelValues(metrics.OutcomeConfirmedEmpty).Inc()
	}

	log.Info(LogMsgRecipeEnriched,
		"recipe_id", recipe.RecipeID,
		"status", status,
		"ingredients", len(ingredients))
	return status, nil
}

// ingredientsFromItemDetail walks createdByRecipes[0].inputs. Each input
// group carries a quantity multiplier and a nested items array of candidate
// stacks; the upstream "pick N from this group" semantics are simplified to
// "all of them, at the group quantity". The second return is false only when
// the payload could not be interpreted at all.
func ingredientsFromItemDetail(ctx context.Context, doc rawdoc.Doc, recipeID string) ([]domain.RecipeIngredient, bool) {
	log := logger.FromContext(ctx)

	createdBy, ok := doc.TryArray("createdByRecipes")
	if !ok || len(createdBy) == 0 {
		// No producing recipes on the item at all: a spurious recipe record
		// for a raw material. Confirmed empty.
		return nil, true
	}

	// The API does not disambiguate multiple producing recipes; the first
	// entry wins. Known limitation, kept visible in the logs.
	if len(createdBy) > 1 {
		log.Debug(LogMsgMultipleProducingRecipes, "recipe_id", recipeID, "candidates", len(createdBy))
	}

	first, ok := rawdoc.FromAny(createdBy[0])
	if !ok {
		return nil, false
	}

	inputs, ok := first.TryArray("inputs")
	if !ok {
		return nil, true
	}

	var ingredients []domain.RecipeIngredient
	for _, entry := range inputs {
		group, ok := rawdoc.FromAny(entry)
		if !ok {
			continue
		}
		groupQuantity := group.IntOr("quantity", 1)
		if groupQuantity <= 0 {
			groupQuantity = 1
		}

		stacks, ok := group.TryArray("items")
		if !ok {
			continue
		}
		for _, stackEntry := range stacks {
			stack, ok := rawdoc.FromAny(stackEntry)
			if !ok {
				continue
			}
			itemID := stack.FirstString("itemId", "guid", "id")
			itemName := stack.FirstString("itemName", "name")
			if itemID == "" && itemName == "" {
				continue
			}
			ingredients = append(ingredients, domain.RecipeIngredient{
				ItemID:   itemID,
				ItemName: itemName,
				Quantity: groupQuantity,
			})
		}
	}
	return ingredients, true
}

// cacheIngredientItems fetches and caches each ingredient item's own detail
// so the resolver can later walk the graph without network calls. Individual
// failures are logged and skipped.
func (e *Engine) cacheIngredientItems(ctx context.Context, ingredients []domain.RecipeIngredient) {
	log := logger.FromContext(ctx)

	seen := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		if ing.ItemID == "" || seen[ing.ItemID] {
			continue
		}
		seen[ing.ItemID] = true

		doc, ok := e.fetcher.FetchItemDetail(ctx, ing.ItemID)
		if !ok {
			log.Warn(LogMsgIngredientDetailFailed, "item_id", ing.ItemID)
			continue
		}
		item, ok := codex.ItemFromDoc(doc)
		if !ok {
			log.Warn(LogMsgIngredientDetailFailed, "item_id", ing.ItemID)
			continue
		}
		if err := e.items.UpsertItem(ctx, &item); err != nil {
			log.Warn(LogMsgIngredientCacheFailed, "item_id", ing.ItemID, "error", err)
		}
	}
}
