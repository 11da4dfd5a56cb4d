package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
	"github.com/Pandamonium-Gaming/PandaBot/internal/repository"
)

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) repository.Item {
	return &ItemRepository{db: db}
}

const itemColumns = `id, item_id, name, description, item_type, category, rarity, level,
	icon_url, stackable, slot, tags, raw, cached_at, last_updated`

// UpsertItem inserts a new item or updates the existing row by natural key.
// cached_at is only set on first insert; last_updated bumps on every write.
func (r *ItemRepository) UpsertItem(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (item_id, name, description, item_type, category, rarity, level,
			icon_url, stackable, slot, tags, raw, cached_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		ON CONFLICT (item_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			item_type = EXCLUDED.item_type,
			category = EXCLUDED.category,
			rarity = EXCLUDED.rarity,
			level = EXCLUDED.level,
			icon_url = EXCLUDED.icon_url,
			stackable = EXCLUDED.stackable,
			slot = EXCLUDED.slot,
			tags = EXCLUDED.tags,
			raw = EXCLUDED.raw,
			last_updated = NOW()
	`
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		item.ItemID, item.Name, item.Description, item.Type, item.Category,
		item.Rarity, item.Level, item.IconURL, item.Stackable, item.Slot,
		tags, item.Raw)
	if err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.ItemID, err)
	}
	return nil
}

// GetItemByItemID retrieves an item by its upstream identifier
func (r *ItemRepository) GetItemByItemID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE item_id = $1`, itemColumns)

	item, err := scanItem(r.db.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// GetItemByName retrieves an item by exact case-insensitive name
func (r *ItemRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE LOWER(name) = LOWER($1) ORDER BY id LIMIT 1`, itemColumns)

	item, err := scanItem(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}
	return item, nil
}

// ListItemNames returns all non-empty item names for search candidates
func (r *ItemRepository) ListItemNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM items WHERE name <> '' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list item names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan item name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountItems returns the number of cached items
func (r *ItemRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.ItemID, &item.Name, &item.Description, &item.Type,
		&item.Category, &item.Rarity, &item.Level, &item.IconURL,
		&item.Stackable, &item.Slot, &item.Tags, &item.Raw,
		&item.CachedAt, &item.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
