package handler

import (
	"net/http"

	"github.com/Pandamonium-Gaming/PandaBot/internal/catalog"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/search"
)

// SearchResponse carries ranked name matches for a query
type SearchResponse struct {
	Query   string         `json:"query"`
	Matches []search.Match `json:"matches"`
}

// MaterialsResponse carries flattened raw-material totals
type MaterialsResponse struct {
	RecipeID  string         `json:"recipe_id,omitempty"`
	ItemID    string         `json:"item_id,omitempty"`
	Materials map[string]int `json:"materials"`
}

// HandleSearchItems handles GET /api/v1/items/search?q=...&limit=...
func HandleSearchItems(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, ok := GetQueryParam(r, w, "q")
		if !ok {
			return
		}
		limit, ok := GetLimitParam(r, w, 0)
		if !ok {
			return
		}

		matches, err := svc.SearchItems(r.Context(), query, limit)
		if err != nil {
			respondServiceError(w, r, "Search items", err)
			return
		}

		logger.FromContext(r.Context()).Debug("Item search served",
			"query", query, "matches", len(matches))
		respondJSON(w, http.StatusOK, SearchResponse{Query: query, Matches: matches})
	}
}

// HandleSearchRecipes handles GET /api/v1/recipes/search?q=...&limit=...
func HandleSearchRecipes(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, ok := GetQueryParam(r, w, "q")
		if !ok {
			return
		}
		limit, ok := GetLimitParam(r, w, 0)
		if !ok {
			return
		}

		matches, err := svc.SearchRecipes(r.Context(), query, limit)
		if err != nil {
			respondServiceError(w, r, "Search recipes", err)
			return
		}

		respondJSON(w, http.StatusOK, SearchResponse{Query: query, Matches: matches})
	}
}

// HandleGetItem handles GET /api/v1/items?id=... or ?name=...
func HandleGetItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if name := r.URL.Query().Get("name"); name != "" {
			item, err := svc.FindItemByName(r.Context(), name)
			if err != nil {
				respondServiceError(w, r, "Get item by name", err)
				return
			}
			respondJSON(w, http.StatusOK, item)
			return
		}

		itemID, ok := GetQueryParam(r, w, "id")
		if !ok {
			return
		}
		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// HandleGetRecipe handles GET /api/v1/recipes?id=... or ?name=...
// The returned recipe may still be awaiting ingredient enrichment when the
// upstream lookup exceeded the on-demand bound.
func HandleGetRecipe(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if name := r.URL.Query().Get("name"); name != "" {
			recipe, err := svc.FindRecipeByName(r.Context(), name)
			if err != nil {
				respondServiceError(w, r, "Get recipe by name", err)
				return
			}
			respondJSON(w, http.StatusOK, recipe)
			return
		}

		recipeID, ok := GetQueryParam(r, w, "id")
		if !ok {
			return
		}
		recipe, err := svc.GetRecipe(r.Context(), recipeID)
		if err != nil {
			respondServiceError(w, r, "Get recipe", err)
			return
		}
		respondJSON(w, http.StatusOK, recipe)
	}
}

// HandleRecipeMaterials handles GET /api/v1/recipes/materials?id=...
func HandleRecipeMaterials(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, ok := GetQueryParam(r, w, "id")
		if !ok {
			return
		}

		materials, err := svc.RecipeRawMaterials(r.Context(), recipeID)
		if err != nil {
			respondServiceError(w, r, "Resolve recipe materials", err)
			return
		}

		respondJSON(w, http.StatusOK, MaterialsResponse{RecipeID: recipeID, Materials: materials})
	}
}

// HandleItemMaterials handles GET /api/v1/items/materials?id=...
// An item nothing crafts resolves to an empty materials map.
func HandleItemMaterials(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetQueryParam(r, w, "id")
		if !ok {
			return
		}

		materials, err := svc.ItemRawMaterials(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Resolve item materials", err)
			return
		}

		respondJSON(w, http.StatusOK, MaterialsResponse{ItemID: itemID, Materials: materials})
	}
}
