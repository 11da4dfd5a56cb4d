package domain

import (
	"encoding/json"
	"time"
)

// EnrichmentStatus tracks whether a recipe's ingredient list has been
// resolved from the upstream item detail payload.
type EnrichmentStatus string

const (
	// EnrichmentUnattempted means no successful enrichment has happened yet;
	// the recipe is retried by future sweeps and on-demand reads.
	EnrichmentUnattempted EnrichmentStatus = "unattempted"
	// EnrichmentEnriched means ingredient rows were resolved and stored.
	EnrichmentEnriched EnrichmentStatus = "enriched"
	// EnrichmentConfirmedEmpty means upstream confirmed the recipe has no
	// inputs, as opposed to enrichment simply not having succeeded.
	EnrichmentConfirmedEmpty EnrichmentStatus = "confirmed_empty"
)

// Recipe represents a cached crafting recipe. RecipeID is the upstream
// identifier and the natural key for upserts.
type Recipe struct {
	ID               int                `json:"-"`
	RecipeID         string             `json:"recipe_id"`
	Name             string             `json:"name"`
	Profession       string             `json:"profession,omitempty"`
	ProfessionLevel  int                `json:"profession_level,omitempty"`
	OutputItemID     string             `json:"output_item_id,omitempty"`
	OutputItemName   string             `json:"output_item_name,omitempty"`
	OutputQuantity   int                `json:"output_quantity,omitempty"`
	Station          string             `json:"station,omitempty"`
	CraftTime        int                `json:"craft_time,omitempty"`
	EnrichmentStatus EnrichmentStatus   `json:"enrichment_status"`
	Ingredients      []RecipeIngredient `json:"ingredients,omitempty"`
	Raw              json.RawMessage    `json:"-"`
	CachedAt         time.Time          `json:"cached_at,omitempty"`
	LastUpdated      time.Time          `json:"last_updated,omitempty"`
}

// RecipeIngredient is one material requirement of a recipe. Rows are owned by
// the parent recipe and fully replaced on re-enrichment.
type RecipeIngredient struct {
	ItemID   string `json:"item_id,omitempty"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// NeedsEnrichment reports whether the recipe should be sent through the
// enrichment engine: it must have a known output item and an unattempted
// status. Confirmed-empty recipes are never retried.
func (r *Recipe) NeedsEnrichment() bool {
	return r.OutputItemID != "" && r.EnrichmentStatus == EnrichmentUnattempted
}

// Ingredient is a quantity-bearing reference into the item graph, used as
// resolver input independent of any recipe row.
type Ingredient struct {
	ItemID   string
	ItemName string
	Quantity int
}
