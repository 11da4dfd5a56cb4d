package domain

import (
	"encoding/json"
	"time"
)

// Item represents a cached codex item. ItemID is the upstream identifier and
// the natural key for upserts; the surrogate ID only exists for foreign keys.
type Item struct {
	ID          int             `json:"-"`
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type,omitempty"`
	Category    string          `json:"category,omitempty"`
	Rarity      string          `json:"rarity,omitempty"`
	Level       *int            `json:"level,omitempty"`
	IconURL     string          `json:"icon_url,omitempty"`
	Stackable   bool            `json:"stackable,omitempty"`
	Slot        string          `json:"slot,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Raw         json.RawMessage `json:"-"`
	CachedAt    time.Time       `json:"cached_at,omitempty"`
	LastUpdated time.Time       `json:"last_updated,omitempty"`
}

// HasTag reports whether the item carries the exact gameplay tag.
func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
