package repository

import (
	"context"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
)

// Recipe defines the interface for recipe cache persistence
type Recipe interface {
	// UpsertRecipe inserts the recipe or updates its descriptive fields in
	// place by its natural key (RecipeID). Ingredient rows and enrichment
	// status are left untouched unless the incoming recipe arrived already
	// enriched, in which case its rows replace any existing ones.
	UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error

	// ReplaceIngredients deletes the recipe's ingredient rows and inserts the
	// given set in a single transaction, recording the new enrichment status.
	ReplaceIngredients(ctx context.Context, recipeID string, ingredients []domain.RecipeIngredient, status domain.EnrichmentStatus) error

	GetRecipeByRecipeID(ctx context.Context, recipeID string) (*domain.Recipe, error)
	GetRecipeByName(ctx context.Context, name string) (*domain.Recipe, error)

	// GetRecipeByOutputItemID returns a recipe producing the given item, used
	// by the raw-material resolver to decide whether an ingredient is a leaf.
	GetRecipeByOutputItemID(ctx context.Context, itemID string) (*domain.Recipe, error)

	// ListUnenrichedRecipes returns recipes still awaiting enrichment: known
	// output item, unattempted status. Confirmed-empty recipes are excluded.
	ListUnenrichedRecipes(ctx context.Context) ([]domain.Recipe, error)

	ListRecipeNames(ctx context.Context) ([]string, error)
	CountRecipes(ctx context.Context) (int, error)
}
