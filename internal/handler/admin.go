package handler

import (
	"context"
	"net/http"

	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/worker"
)

// RefreshEnqueuer accepts a refresh job without blocking the request
type RefreshEnqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// CacheCounter reports cache store record counts
type CacheCounter interface {
	CountItems(ctx context.Context) (int, error)
	CountRecipes(ctx context.Context) (int, error)
	CountMobs(ctx context.Context) (int, error)
}

// CacheStatsResponse reports how many records are cached per kind
type CacheStatsResponse struct {
	Items   int `json:"items"`
	Recipes int `json:"recipes"`
	Mobs    int `json:"mobs"`
}

// HandleTriggerRefresh handles POST /api/v1/admin/refresh. The refresh runs
// asynchronously on the worker pool; the response only confirms enqueueing.
func HandleTriggerRefresh(pool RefreshEnqueuer, job worker.Job) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if !pool.TryEnqueue(job) {
			log.Warn("Refresh trigger dropped, queue full")
			respondError(w, http.StatusServiceUnavailable, ErrMsgRefreshEnqueueFailed)
			return
		}

		log.Info("Manual refresh enqueued")
		respondJSON(w, http.StatusAccepted, SuccessResponse{Message: MsgRefreshEnqueued})
	}
}

// HandleGetCacheStats handles GET /api/v1/admin/cache/stats
func HandleGetCacheStats(counter CacheCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := counter.CountItems(ctx)
		if err != nil {
			respondServiceError(w, r, "Count items", err)
			return
		}
		recipes, err := counter.CountRecipes(ctx)
		if err != nil {
			respondServiceError(w, r, "Count recipes", err)
			return
		}
		mobs, err := counter.CountMobs(ctx)
		if err != nil {
			respondServiceError(w, r, "Count mobs", err)
			return
		}

		respondJSON(w, http.StatusOK, CacheStatsResponse{
			Items:   items,
			Recipes: recipes,
			Mobs:    mobs,
		})
	}
}
