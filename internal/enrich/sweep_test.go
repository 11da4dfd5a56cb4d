package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/rawdoc"
)

func TestSweepAll(t *testing.T) {
	fetcher := &mockFetcher{docs: map[string]rawdoc.Doc{
		"item-sword": detailWithInputs(),
		"item-ore":   {"guid": "item-ore", "itemName": "Iron Ore"},
		"item-bar":   {"guid": "item-bar", "itemName": "Iron Bar"},
		// item-lost intentionally absent: that recipe's fetch fails
	}}
	recipes := &mockRecipeStore{recipes: map[string]*domain.Recipe{
		"recipe-sword": unenrichedRecipe("recipe-sword", "item-sword"),
		"recipe-ore":   unenrichedRecipe("recipe-ore", "item-ore"),
		"recipe-lost":  unenrichedRecipe("recipe-lost", "item-lost"),
	}}
	engine := NewEngine(fetcher, recipes, &mockItemStore{}, fastConfig())

	result := engine.SweepAll(context.Background())

	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 1, result.Enriched)
	assert.Equal(t, 1, result.ConfirmedEmpty)
	assert.Equal(t, 1, result.Failed)

	// Progress persisted per recipe: the failed one stays retryable.
	assert.False(t, recipes.recipes["recipe-sword"].NeedsEnrichment())
	assert.False(t, recipes.recipes["recipe-ore"].NeedsEnrichment())
	assert.True(t, recipes.recipes["recipe-lost"].NeedsEnrichment())
}

func TestSweepAll_NothingPending(t *testing.T) {
	recipes := &mockRecipeStore{recipes: map[string]*domain.Recipe{
		"recipe-1": {
			RecipeID:         "recipe-1",
			OutputItemID:     "item-1",
			EnrichmentStatus: domain.EnrichmentEnriched,
		},
	}}
	engine := NewEngine(&mockFetcher{}, recipes, &mockItemStore{}, fastConfig())

	result := engine.SweepAll(context.Background())

	assert.Zero(t, result.Attempted)
}

func TestSweepAll_CancelledBetweenCalls(t *testing.T) {
	fetcher := &mockFetcher{docs: map[string]rawdoc.Doc{
		"item-a": {"guid": "item-a"},
		"item-b": {"guid": "item-b"},
	}}
	recipes := &mockRecipeStore{recipes: map[string]*domain.Recipe{
		"recipe-a": unenrichedRecipe("recipe-a", "item-a"),
		"recipe-b": unenrichedRecipe("recipe-b", "item-b"),
	}}

	cfg := fastConfig()
	cfg.CallDelay = 50 * time.Millisecond
	engine := NewEngine(fetcher, recipes, &mockItemStore{}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	result := engine.SweepAll(ctx)

	// The first recipe commits before the cancelled inter-call pause stops
	// the sweep.
	assert.Equal(t, 1, result.Attempted)
}
