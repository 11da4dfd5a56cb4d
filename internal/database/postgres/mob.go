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

// MobRepository implements repository.Mob for PostgreSQL
type MobRepository struct {
	db *pgxpool.Pool
}

// NewMobRepository creates a new MobRepository
func NewMobRepository(db *pgxpool.Pool) repository.Mob {
	return &MobRepository{db: db}
}

// UpsertMob inserts a new mob or updates the existing row by natural key
func (r *MobRepository) UpsertMob(ctx context.Context, mob *domain.Mob) error {
	query := `
		INSERT INTO mobs (mob_id, name, description, level, zone, raw, cached_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (mob_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			level = EXCLUDED.level,
			zone = EXCLUDED.zone,
			raw = EXCLUDED.raw,
			last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		mob.MobID, mob.Name, mob.Description, mob.Level, mob.Zone, mob.Raw)
	if err != nil {
		return fmt.Errorf("failed to upsert mob %s: %w", mob.MobID, err)
	}
	return nil
}

// GetMobByMobID retrieves a mob by its upstream identifier
func (r *MobRepository) GetMobByMobID(ctx context.Context, mobID string) (*domain.Mob, error) {
	query := `
		SELECT id, mob_id, name, description, level, zone, raw, cached_at, last_updated
		FROM mobs WHERE mob_id = $1
	`
	var mob domain.Mob
	err := r.db.QueryRow(ctx, query, mobID).Scan(
		&mob.ID, &mob.MobID, &mob.Name, &mob.Description, &mob.Level,
		&mob.Zone, &mob.Raw, &mob.CachedAt, &mob.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMobNotFound
		}
		return nil, fmt.Errorf("failed to get mob: %w", err)
	}
	return &mob, nil
}

// UpsertMobDrop records a drop association; redundant inserts are no-ops
func (r *MobRepository) UpsertMobDrop(ctx context.Context, drop *domain.MobDrop) error {
	query := `
		INSERT INTO mob_drops (mob_pk, item_id, recipe_id, added_at)
		SELECT id, $2, $3, NOW() FROM mobs WHERE mob_id = $1
		ON CONFLICT (mob_pk, item_id, recipe_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, drop.MobID, drop.ItemID, drop.RecipeID)
	if err != nil {
		return fmt.Errorf("failed to upsert mob drop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the mob is unknown or the drop already exists; only the
		// former is worth surfacing.
		if _, err := r.GetMobByMobID(ctx, drop.MobID); err != nil {
			return err
		}
	}
	return nil
}

// GetDropsForMob returns the drop associations recorded for a mob
func (r *MobRepository) GetDropsForMob(ctx context.Context, mobID string) ([]domain.MobDrop, error) {
	query := `
		SELECT m.mob_id, d.item_id, d.recipe_id, d.added_at
		FROM mob_drops d
		JOIN mobs m ON m.id = d.mob_pk
		WHERE m.mob_id = $1
		ORDER BY d.id
	`
	rows, err := r.db.Query(ctx, query, mobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mob drops: %w", err)
	}
	defer rows.Close()

	var drops []domain.MobDrop
	for rows.Next() {
		var drop domain.MobDrop
		if err := rows.Scan(&drop.MobID, &drop.ItemID, &drop.RecipeID, &drop.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mob drop: %w", err)
		}
		drops = append(drops, drop)
	}
	return drops, rows.Err()
}

// CountMobs returns the number of cached mobs
func (r *MobRepository) CountMobs(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM mobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mobs: %w", err)
	}
	return count, nil
}
