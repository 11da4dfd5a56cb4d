// Package materials expands a recipe's direct ingredients into flattened
// leaf raw-material totals.
package materials

import (
	"context"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/metrics"
)

// DefaultMaxDepth bounds the recursion so a cyclic crafting graph still
// terminates with a partial answer.
const DefaultMaxDepth = 5

// RecipeLookup is the read-only recipe access the resolver needs.
type RecipeLookup interface {
	GetRecipeByOutputItemID(ctx context.Context, itemID string) (*domain.Recipe, error)
}

// Resolver walks the crafting graph downward from a set of ingredients.
type Resolver struct {
	recipes  RecipeLookup
	maxDepth int
}

// NewResolver creates a resolver. maxDepth <= 0 selects DefaultMaxDepth.
func NewResolver(recipes RecipeLookup, maxDepth int) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Resolver{
		recipes:  recipes,
		maxDepth: maxDepth,
	}
}

// Resolve expands the ingredients into a map of leaf raw-material totals
// keyed by item name. Quantities compose multiplicatively along the tree;
// branches that bottom out in the same material accumulate into one entry.
// An ingredient with no enriched recipe producing it is a leaf; so is
// anything at the depth bound. Resolution never fails, it only truncates.
func (r *Resolver) Resolve(ctx context.Context, ingredients []domain.Ingredient) map[string]int {
	totals := make(map[string]int)
	r.expand(ctx, ingredients, 1, r.maxDepth, totals)
	return totals
}

func (r *Resolver) expand(ctx context.Context, ingredients []domain.Ingredient, multiplier, depth int, totals map[string]int) {
	for _, ing := range ingredients {
		quantity := ing.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		required := quantity * multiplier

		if depth <= 0 {
			metrics.DepthTruncations.Inc()
			logger.FromContext(ctx).Debug("Material resolution truncated at depth bound",
				"item", ing.ItemName)
			addLeaf(totals, ing, required)
			continue
		}

		sub := r.producingRecipe(ctx, ing.ItemID)
		if sub == nil {
			addLeaf(totals, ing, required)
			continue
		}

		subIngredients := make([]domain.Ingredient, len(sub.Ingredients))
		for i, si := range sub.Ingredients {
			subIngredients[i] = domain.Ingredient{
				ItemID:   si.ItemID,
				ItemName: si.ItemName,
				Quantity: si.Quantity,
			}
		}
		r.expand(ctx, subIngredients, required, depth-1, totals)
	}
}

// producingRecipe returns a recipe that crafts the item and has at least one
// ingredient of its own; anything else means the item is a leaf.
func (r *Resolver) producingRecipe(ctx context.Context, itemID string) *domain.Recipe {
	if itemID == "" {
		return nil
	}
	recipe, err := r.recipes.GetRecipeByOutputItemID(ctx, itemID)
	if err != nil || recipe == nil || len(recipe.Ingredients) == 0 {
		return nil
	}
	return recipe
}

// addLeaf accumulates a raw-material total. Names are the aggregation key
// since raw materials are deduplicated for display; the upstream id stands in
// when the name is unknown.
func addLeaf(totals map[string]int, ing domain.Ingredient, quantity int) {
	name := ing.ItemName
	if name == "" {
		name = ing.ItemID
	}
	if name == "" {
		return
	}
	totals[name] += quantity
}
