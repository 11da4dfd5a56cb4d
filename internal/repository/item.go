package repository

import (
	"context"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
)

// Item defines the interface for item cache persistence
type Item interface {
	// UpsertItem inserts the item or updates it in place by its natural key
	// (ItemID), bumping last_updated. Safe to call redundantly.
	UpsertItem(ctx context.Context, item *domain.Item) error

	GetItemByItemID(ctx context.Context, itemID string) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)

	// ListItemNames returns all cached item names for fuzzy candidate retrieval.
	ListItemNames(ctx context.Context) ([]string, error)
	CountItems(ctx context.Context) (int, error)
}
