package materials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
)

// mockRecipeLookup keys recipes by their output item id
type mockRecipeLookup struct {
	recipes map[string]*domain.Recipe
	calls   int
}

func (m *mockRecipeLookup) GetRecipeByOutputItemID(ctx context.Context, itemID string) (*domain.Recipe, error) {
	m.calls++
	recipe, ok := m.recipes[itemID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func producedBy(outputItemID string, ingredients ...domain.RecipeIngredient) *domain.Recipe {
	return &domain.Recipe{
		RecipeID:         "recipe-for-" + outputItemID,
		OutputItemID:     outputItemID,
		EnrichmentStatus: domain.EnrichmentEnriched,
		Ingredients:      ingredients,
	}
}

func TestResolve_FlatIngredients(t *testing.T) {
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{}}
	resolver := NewResolver(lookup, 0)

	totals := resolver.Resolve(context.Background(), []domain.Ingredient{
		{ItemID: "ore", ItemName: "Iron Ore", Quantity: 3},
		{ItemID: "coal", ItemName: "Coal", Quantity: 1},
	})

	assert.Equal(t, map[string]int{"Iron Ore": 3, "Coal": 1}, totals)
}

func TestResolve_MultiplicativeQuantities(t *testing.T) {
	// Sword needs 2 Bars; each Bar needs 3 Ore.
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{
		"bar": producedBy("bar", domain.RecipeIngredient{ItemID: "ore", ItemName: "Iron Ore", Quantity: 3}),
	}}
	resolver := NewResolver(lookup, 0)

	totals := resolver.Resolve(context.Background(), []domain.Ingredient{
		{ItemID: "bar", ItemName: "Iron Bar", Quantity: 2},
	})

	assert.Equal(t, map[string]int{"Iron Ore": 6}, totals)
}

func TestResolve_SharedLeavesAccumulate(t *testing.T) {
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{
		"bar":    producedBy("bar", domain.RecipeIngredient{ItemID: "ore", ItemName: "Iron Ore", Quantity: 2}),
		"handle": producedBy("handle", domain.RecipeIngredient{ItemID: "ore", ItemName: "Iron Ore", Quantity: 1}),
	}}
	resolver := NewResolver(lookup, 0)

	totals := resolver.Resolve(context.Background(), []domain.Ingredient{
		{ItemID: "bar", ItemName: "Iron Bar", Quantity: 1},
		{ItemID: "handle", ItemName: "Iron Handle", Quantity: 1},
	})

	assert.Equal(t, map[string]int{"Iron Ore": 3}, totals)
}

func TestResolve_CycleTerminates(t *testing.T) {
	// a is made from b, b is made from a. The depth bound must stop this.
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{
		"a": producedBy("a", domain.RecipeIngredient{ItemID: "b", ItemName: "Item B", Quantity: 1}),
		"b": producedBy("b", domain.RecipeIngredient{ItemID: "a", ItemName: "Item A", Quantity: 1}),
	}}
	resolver := NewResolver(lookup, 5)

	totals := resolver.Resolve(context.Background(), []domain.Ingredient{
		{ItemID: "a", ItemName: "Item A", Quantity: 1},
	})

	// Terminates with a single truncated leaf rather than recursing forever.
	assert.Len(t, totals, 1)
	assert.LessOrEqual(t, lookup.calls, 6)
}

func TestResolve_DepthBoundTruncatesToLeaf(t *testing.T) {
	// Chain: a -> b -> c, with maxDepth 1 only a is expanded.
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{
		"a": producedBy("a", domain.RecipeIngredient{ItemID: "b", ItemName: "Item B", Quantity: 2}),
		"b": producedBy("b", domain.RecipeIngredient{ItemID: "c", ItemName: "Item C", Quantity: 2}),
	}}
	resolver := NewResolver(lookup, 1)

	totals := resolver.Resolve(context.Background(), []domain.Ingredient{
		{ItemID: "a", ItemName: "Item A", Quantity: 1},
	})

	assert.Equal(t, map[string]int{"Item B": 2}, totals)
}

func TestResolve_UnenrichedRecipeIsLeaf(t *testing.T) {
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{
		"bar": {
			RecipeID:         "recipe-bar",
			OutputItemID:     "bar",
			EnrichmentStatus: domain.EnrichmentUnattempted,
		},
	}}
	resolver := NewResolver(lookup, 0)

	totals := resolver.Resolve(context.Background(), []domain.Ingredient{
		{ItemID: "bar", ItemName: "Iron Bar", Quantity: 4},
	})

	assert.Equal(t, map[string]int{"Iron Bar": 4}, totals)
}

func TestResolve_EdgeCases(t *testing.T) {
	lookup := &mockRecipeLookup{recipes: map[string]*domain.Recipe{}}
	resolver := NewResolver(lookup, 0)

	t.Run("No ingredients", func(t *testing.T) {
		totals := resolver.Resolve(context.Background(), nil)
		assert.Empty(t, totals)
	})

	t.Run("Zero quantity treated as one", func(t *testing.T) {
		totals := resolver.Resolve(context.Background(), []domain.Ingredient{
			{ItemID: "ore", ItemName: "Iron Ore", Quantity: 0},
		})
		assert.Equal(t, map[string]int{"Iron Ore": 1}, totals)
	})

	t.Run("Missing name falls back to id", func(t *testing.T) {
		totals := resolver.Resolve(context.Background(), []domain.Ingredient{
			{ItemID: "ore", Quantity: 2},
		})
		assert.Equal(t, map[string]int{"ore": 2}, totals)
	})

	t.Run("Nameless and idless ingredient dropped", func(t *testing.T) {
		totals := resolver.Resolve(context.Background(), []domain.Ingredient{
			{Quantity: 2},
		})
		assert.Empty(t, totals)
	})
}
