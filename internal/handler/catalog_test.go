package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/search"
)

// mockCatalogService implements catalog.Service with per-method overrides
type mockCatalogService struct {
	searchItemsFn        func(ctx context.Context, query string, limit int) ([]search.Match, error)
	searchRecipesFn      func(ctx context.Context, query string, limit int) ([]search.Match, error)
	getItemFn            func(ctx context.Context, itemID string) (*domain.Item, error)
	findItemByNameFn     func(ctx context.Context, name string) (*domain.Item, error)
	getRecipeFn          func(ctx context.Context, recipeID string) (*domain.Recipe, error)
	findRecipeByNameFn   func(ctx context.Context, name string) (*domain.Recipe, error)
	recipeRawMaterialsFn func(ctx context.Context, recipeID string) (map[string]int, error)
	itemRawMaterialsFn   func(ctx context.Context, itemID string) (map[string]int, error)
}

func (m *mockCatalogService) SearchItems(ctx context.Context, query string, limit int) ([]search.Match, error) {
	return m.searchItemsFn(ctx, query, limit)
}

func (m *mockCatalogService) SearchRecipes(ctx context.Context, query string, limit int) ([]search.Match, error) {
	return m.searchRecipesFn(ctx, query, limit)
}

func (m *mockCatalogService) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return m.getItemFn(ctx, itemID)
}

func (m *mockCatalogService) FindItemByName(ctx context.Context, name string) (*domain.Item, error) {
	return m.findItemByNameFn(ctx, name)
}

func (m *mockCatalogService) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	return m.getRecipeFn(ctx, recipeID)
}

func (m *mockCatalogService) FindRecipeByName(ctx context.Context, name string) (*domain.Recipe, error) {
	return m.findRecipeByNameFn(ctx, name)
}

func (m *mockCatalogService) RecipeRawMaterials(ctx context.Context, recipeID string) (map[string]int, error) {
	return m.recipeRawMaterialsFn(ctx, recipeID)
}

func (m *mockCatalogService) ItemRawMaterials(ctx context.Context, itemID string) (map[string]int, error) {
	return m.itemRawMaterialsFn(ctx, itemID)
}

func (m *mockCatalogService) InvalidateCache() {}

func TestHandleSearchItems(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockCatalogService{
			searchItemsFn: func(ctx context.Context, query string, limit int) ([]search.Match, error) {
				assert.Equal(t, "iron", query)
				assert.Equal(t, 5, limit)
				return []search.Match{
					{Name: "Iron Sword", Score: 90},
					{Name: "Iron Ore", Score: 90},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/search?q=iron&limit=5", nil)
		w := httptest.NewRecorder()
		HandleSearchItems(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "iron", resp.Query)
		require.Len(t, resp.Matches, 2)
		assert.Equal(t, "Iron Sword", resp.Matches[0].Name)
	})

	t.Run("Missing query parameter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/search", nil)
		w := httptest.NewRecorder()
		HandleSearchItems(&mockCatalogService{})(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		for _, limit := range []string{"abc", "0", "-3"} {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/items/search?q=iron&limit="+limit, nil)
			w := httptest.NewRecorder()
			HandleSearchItems(&mockCatalogService{})(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
		}
	})

	t.Run("Service failure maps to 500", func(t *testing.T) {
		svc := &mockCatalogService{
			searchItemsFn: func(ctx context.Context, query string, limit int) ([]search.Match, error) {
				return nil, assert.AnError
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/search?q=iron", nil)
		w := httptest.NewRecorder()
		HandleSearchItems(svc)(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ErrMsgGenericServerError, resp.Error)
	})
}

func TestHandleGetItem(t *testing.T) {
	t.Run("By id", func(t *testing.T) {
		svc := &mockCatalogService{
			getItemFn: func(ctx context.Context, itemID string) (*domain.Item, error) {
				assert.Equal(t, "item-1", itemID)
				return &domain.Item{ItemID: "item-1", Name: "Iron Sword"}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items?id=item-1", nil)
		w := httptest.NewRecorder()
		HandleGetItem(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var item domain.Item
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, "Iron Sword", item.Name)
	})

	t.Run("By name", func(t *testing.T) {
		svc := &mockCatalogService{
			findItemByNameFn: func(ctx context.Context, name string) (*domain.Item, error) {
				assert.Equal(t, "Iron Sword", name)
				return &domain.Item{ItemID: "item-1", Name: "Iron Sword"}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items?name=Iron+Sword", nil)
		w := httptest.NewRecorder()
		HandleGetItem(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not found maps to 404", func(t *testing.T) {
		svc := &mockCatalogService{
			getItemFn: func(ctx context.Context, itemID string) (*domain.Item, error) {
				return nil, domain.ErrItemNotFound
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items?id=item-missing", nil)
		w := httptest.NewRecorder()
		HandleGetItem(svc)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ErrMsgItemNotFoundError, resp.Error)
	})

	t.Run("Missing id and name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items", nil)
		w := httptest.NewRecorder()
		HandleGetItem(&mockCatalogService{})(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGetRecipe(t *testing.T) {
	t.Run("By id", func(t *testing.T) {
		svc := &mockCatalogService{
			getRecipeFn: func(ctx context.Context, recipeID string) (*domain.Recipe, error) {
				return &domain.Recipe{
					RecipeID:         "recipe-1",
					Name:             "Iron Sword",
					EnrichmentStatus: domain.EnrichmentEnriched,
					Ingredients: []domain.RecipeIngredient{
						{ItemID: "item-bar", ItemName: "Iron Bar", Quantity: 2},
					},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes?id=recipe-1", nil)
		w := httptest.NewRecorder()
		HandleGetRecipe(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var recipe domain.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
		assert.Equal(t, "recipe-1", recipe.RecipeID)
		require.Len(t, recipe.Ingredients, 1)
		assert.Equal(t, 2, recipe.Ingredients[0].Quantity)
	})

	t.Run("Pending enrichment still served", func(t *testing.T) {
		svc := &mockCatalogService{
			getRecipeFn: func(ctx context.Context, recipeID string) (*domain.Recipe, error) {
				return &domain.Recipe{
					RecipeID:         "recipe-1",
					Name:             "Iron Sword",
					OutputItemID:     "item-1",
					EnrichmentStatus: domain.EnrichmentUnattempted,
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes?id=recipe-1", nil)
		w := httptest.NewRecorder()
		HandleGetRecipe(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var recipe domain.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
		assert.Empty(t, recipe.Ingredients)
		assert.Equal(t, domain.EnrichmentUnattempted, recipe.EnrichmentStatus)
	})

	t.Run("Not found maps to 404", func(t *testing.T) {
		svc := &mockCatalogService{
			getRecipeFn: func(ctx context.Context, recipeID string) (*domain.Recipe, error) {
				return nil, domain.ErrRecipeNotFound
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes?id=recipe-missing", nil)
		w := httptest.NewRecorder()
		HandleGetRecipe(svc)(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleRecipeMaterials(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockCatalogService{
			recipeRawMaterialsFn: func(ctx context.Context, recipeID string) (map[string]int, error) {
				assert.Equal(t, "recipe-1", recipeID)
				return map[string]int{"Iron Ore": 6, "Coal": 2}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/materials?id=recipe-1", nil)
		w := httptest.NewRecorder()
		HandleRecipeMaterials(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp MaterialsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "recipe-1", resp.RecipeID)
		assert.Equal(t, map[string]int{"Iron Ore": 6, "Coal": 2}, resp.Materials)
	})

	t.Run("Missing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes/materials", nil)
		w := httptest.NewRecorder()
		HandleRecipeMaterials(&mockCatalogService{})(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleItemMaterials(t *testing.T) {
	t.Run("Uncrafted item returns empty map", func(t *testing.T) {
		svc := &mockCatalogService{
			itemRawMaterialsFn: func(ctx context.Context, itemID string) (map[string]int, error) {
				return map[string]int{}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/materials?id=item-raw", nil)
		w := httptest.NewRecorder()
		HandleItemMaterials(svc)(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp MaterialsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "item-raw", resp.ItemID)
		assert.NotNil(t, resp.Materials)
		assert.Empty(t, resp.Materials)
	})
}
