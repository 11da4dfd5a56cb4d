package domain

import (
	"encoding/json"
	"time"
)

// Mob represents a cached creature record. Mobs share the item/recipe
// ingestion pattern but are out of scope for material resolution.
type Mob struct {
	ID          int             `json:"-"`
	MobID       string          `json:"mob_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Level       *int            `json:"level,omitempty"`
	Zone        string          `json:"zone,omitempty"`
	Raw         json.RawMessage `json:"-"`
	CachedAt    time.Time       `json:"cached_at,omitempty"`
	LastUpdated time.Time       `json:"last_updated,omitempty"`
}

// MobDrop associates a mob with an item or recipe it can drop.
type MobDrop struct {
	MobID    string    `json:"mob_id"`
	ItemID   string    `json:"item_id,omitempty"`
	RecipeID string    `json:"recipe_id,omitempty"`
	AddedAt  time.Time `json:"added_at,omitempty"`
}
