package repository

import (
	"context"

	"github.com/Pandamonium-Gaming/PandaBot/internal/domain"
)

// Mob defines the interface for mob cache persistence
type Mob interface {
	// UpsertMob inserts the mob or updates it in place by its natural key (MobID).
	UpsertMob(ctx context.Context, mob *domain.Mob) error

	GetMobByMobID(ctx context.Context, mobID string) (*domain.Mob, error)

	// UpsertMobDrop records a drop association; redundant calls are no-ops.
	UpsertMobDrop(ctx context.Context, drop *domain.MobDrop) error
	GetDropsForMob(ctx context.Context, mobID string) ([]domain.MobDrop, error)

	CountMobs(ctx context.Context) (int, error)
}
