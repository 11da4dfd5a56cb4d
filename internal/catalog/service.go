// Package catalog is the read-side query facade over the codex cache:
// exact and fuzzy name lookup, id lookup, and raw-material resolution.
// It returns structured records only; presentation is someone else's job.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/metrics"
	"github.com/Pandamonium-Gaming/PandaBot/internal/search"
)

// Repository defines the read access the catalog needs from the cache store
type Repository interface {
	GetItemByItemID(ctx context.Context, itemID string) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItemNames(ctx context.Context) ([]string, error)

	GetRecipeByRecipeID(ctx context.Context, recipeID string) (*domain.Recipe, error)
	GetRecipeByName(ctx context.Context, name string) (*domain.Recipe, error)
	GetRecipeByOutputItemID(ctx context.Context, itemID string) (*domain.Recipe, error)
	ListRecipeNames(ctx context.Context) ([]string, error)
}

// Enricher completes a recipe's ingredients within a bounded wait
type Enricher interface {
	EnsureEnriched(ctx context.Context, recipe *domain.Recipe) *domain.Recipe
}

// Resolver expands ingredients into leaf raw-material totals
type Resolver interface {
	Resolve(ctx context.Context, ingredients []domain.Ingredient) map[string]int
}

// Service defines the interface for catalog queries
type Service interface {
	SearchItems(ctx context.Context, query string, limit int) ([]search.Match, error)
	SearchRecipes(ctx context.Context, query string, limit int) ([]search.Match, error)
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	FindItemByName(ctx context.Context, name string) (*domain.Item, error)
	GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error)
	FindRecipeByName(ctx context.Context, name string) (*domain.Recipe, error)
	RecipeRawMaterials(ctx context.Context, recipeID string) (map[string]int, error)
	ItemRawMaterials(ctx context.Context, itemID string) (map[string]int, error)
	InvalidateCache()
}

type service struct {
	repo     Repository
	enricher Enricher
	resolver Resolver
	cache    *lookupCache
}

// NewService creates a new catalog service
func NewService(repo Repository, enricher Enricher, resolver Resolver, cacheSize int, cacheTTL time.Duration) Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &service{
		repo:     repo,
		enricher: enricher,
		resolver: resolver,
		cache:    newLookupCache(cacheSize, cacheTTL),
	}
}

// SearchItems ranks cached item names against the query
func (s *service) SearchItems(ctx context.Context, query string, limit int) ([]search.Match, error) {
	metrics.Searches.WithLabelValues(SearchKindItems).Inc()
	return s.searchNames(ctx, SearchKindItems, query, limit, s.repo.ListItemNames)
}

// SearchRecipes ranks cached recipe names against the query
func (s *service) SearchRecipes(ctx context.Context, query string, limit int) ([]search.Match, error) {
	metrics.Searches.WithLabelValues(SearchKindRecipes).Inc()
	return s.searchNames(ctx, SearchKindRecipes, query, limit, s.repo.ListRecipeNames)
}

func (s *service) searchNames(ctx context.Context, kind, query string, limit int, list func(context.Context) ([]string, error)) ([]search.Match, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > MaxSearchResults {
		limit = DefaultSearchResults
	}

	names, found := s.cache.GetNames(kind)
	if !found {
		var err error
		names, err = list(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s search candidates: %w", kind, err)
		}
		s.cache.SetNames(kind, names)
	}

	return search.Rank(query, names, limit), nil
}

// GetItem retrieves an item by upstream id, served from the TTL cache when hot
func (s *service) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if item, found := s.cache.GetItem(itemID); found {
		return item, nil
	}

	item, err := s.repo.GetItemByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	s.cache.SetItem(itemID, item)
	return item, nil
}

// FindItemByName retrieves an item by exact case-insensitive name
func (s *service) FindItemByName(ctx context.Context, name string) (*domain.Item, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.GetItemByName(ctx, name)
}

// GetRecipe retrieves a recipe by upstream id, enriching on demand within the
// engine's bounded wait. An unenriched recipe is still a valid result.
func (s *service) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	if recipeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if recipe, found := s.cache.GetRecipe(recipeID); found {
		return recipe, nil
	}

	recipe, err := s.repo.GetRecipeByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	recipe = s.enricher.EnsureEnriched(ctx, recipe)

	// A recipe still awaiting enrichment is served but not cached, so the
	// next lookup sees the background result as soon as it lands.
	if recipe != nil && !recipe.NeedsEnrichment() {
		s.cache.SetRecipe(recipeID, recipe)
	}
	return recipe, nil
}

// FindRecipeByName retrieves a recipe by exact case-insensitive name
func (s *service) FindRecipeByName(ctx context.Context, name string) (*domain.Recipe, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := s.repo.GetRecipeByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnsureEnriched(ctx, recipe), nil
}

// RecipeRawMaterials expands a recipe into flattened leaf-material totals
func (s *service) RecipeRawMaterials(ctx context.Context, recipeID string) (map[string]int, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	ingredients := make([]domain.Ingredient, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingredients[i] = domain.Ingredient{
			ItemID:   ing.ItemID,
			ItemName: ing.ItemName,
			Quantity: ing.Quantity,
		}
	}

	totals := s.resolver.Resolve(ctx, ingredients)
	logger.FromContext(ctx).Debug(LogMsgResolvedMaterials,
		"recipe_id", recipeID, "materials", len(totals))
	return totals, nil
}

// ItemRawMaterials expands the recipe producing the given item. Items with
// no producing recipe resolve to an empty map, not an error.
func (s *service) ItemRawMaterials(ctx context.Context, itemID string) (map[string]int, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}

	recipe, err := s.repo.GetRecipeByOutputItemID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return map[string]int{}, nil
		}
		return nil, err
	}

	return s.RecipeRawMaterials(ctx, recipe.RecipeID)
}

// InvalidateCache drops the TTL caches, called after a full refresh
func (s *service) InvalidateCache() {
	s.cache.Purge()
}
