package handler

import (
	"context"
	"net/http"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
)

// MobStore is the mob persistence the handlers need
type MobStore interface {
	GetMobByMobID(ctx context.Context, mobID string) (*domain.Mob, error)
	UpsertMobDrop(ctx context.Context, drop *domain.MobDrop) error
	GetDropsForMob(ctx context.Context, mobID string) ([]domain.MobDrop, error)
}

// MobDropRequest records that a mob drops an item or a recipe. At least one
// of the two references must be present.
type MobDropRequest struct {
	MobID    string `json:"mob_id" validate:"required"`
	ItemID   string `json:"item_id" validate:"required_without=RecipeID"`
	RecipeID string `json:"recipe_id" validate:"required_without=ItemID"`
}

// MobDropsResponse lists a mob's recorded drops
type MobDropsResponse struct {
	MobID string           `json:"mob_id"`
	Drops []domain.MobDrop `json:"drops"`
}

// HandleGetMob handles GET /api/v1/mobs?id=...
func HandleGetMob(store MobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mobID, ok := GetQueryParam(r, w, "id")
		if !ok {
			return
		}

		mob, err := store.GetMobByMobID(r.Context(), mobID)
		if err != nil {
			respondServiceError(w, r, "Get mob", err)
			return
		}
		respondJSON(w, http.StatusOK, mob)
	}
}

// HandleRecordMobDrop handles POST /api/v1/mobs/drops. Drop sightings come
// from operators, not the upstream codex, so this is the one write the API
// accepts.
func HandleRecordMobDrop(store MobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MobDropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "record mob drop"); err != nil {
			return
		}

		drop := &domain.MobDrop{
			MobID:    req.MobID,
			ItemID:   req.ItemID,
			RecipeID: req.RecipeID,
		}
		if err := store.UpsertMobDrop(r.Context(), drop); err != nil {
			respondServiceError(w, r, "Record mob drop", err)
			return
		}

		logger.FromContext(r.Context()).Info("Mob drop recorded",
			"mob_id", req.MobID, "item_id", req.ItemID, "recipe_id", req.RecipeID)
		respondJSON(w, http.StatusCreated, SuccessResponse{Message: MsgMobDropRecorded})
	}
}

// HandleGetMobDrops handles GET /api/v1/mobs/drops?id=...
func HandleGetMobDrops(store MobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mobID, ok := GetQueryParam(r, w, "id")
		if !ok {
			return
		}

		drops, err := store.GetDropsForMob(r.Context(), mobID)
		if err != nil {
			respondServiceError(w, r, "Get mob drops", err)
			return
		}
		if drops == nil {
			drops = []domain.MobDrop{}
		}
		respondJSON(w, http.StatusOK, MobDropsResponse{MobID: mobID, Drops: drops})
	}
}
