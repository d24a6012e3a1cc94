package cache

import (
	"context"

	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	basecache "github.com/riskibarqy/rotation-engine/internal/platform/cache"
)

// lookup remembers misses as well as hits.
type lookup[V any] struct {
	value  V
	exists bool
}

// RosterRepository caches season rosters. Availability is per game and read
// once per validation, so it passes through.
type RosterRepository struct {
	next  roster.Repository
	store *basecache.Store
}

func NewRosterRepository(next roster.Repository, store *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, store: store}
}

func (r *RosterRepository) ListBySeason(ctx context.Context, seasonID int64) ([]roster.Player, error) {
	items, err := basecache.Load(ctx, r.store, basecache.Key("roster", "season", seasonID), func(ctx context.Context) ([]roster.Player, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
	if err != nil {
		return nil, err
	}
	return append([]roster.Player(nil), items...), nil
}

func (r *RosterRepository) ListAvailabilityByGame(ctx context.Context, gameID int64) ([]roster.Availability, error) {
	return r.next.ListAvailabilityByGame(ctx, gameID)
}

type GameRepository struct {
	next  game.Repository
	store *basecache.Store
}

func NewGameRepository(next game.Repository, store *basecache.Store) *GameRepository {
	return &GameRepository{next: next, store: store}
}

func (r *GameRepository) ListBySeason(ctx context.Context, seasonID int64) ([]game.Game, error) {
	items, err := basecache.Load(ctx, r.store, basecache.Key("game", "season", seasonID), func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListBySeason(ctx, seasonID)
	})
	if err != nil {
		return nil, err
	}
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	got, err := basecache.Load(ctx, r.store, basecache.Key("game", "id", gameID), func(ctx context.Context) (lookup[game.Game], error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		return lookup[game.Game]{value: item, exists: exists}, err
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return got.value, got.exists, nil
}

// RotationRepository caches season rules only. Plans and batting orders are
// read through, so SavePlan has nothing to invalidate.
type RotationRepository struct {
	next  rotation.Repository
	store *basecache.Store
}

func NewRotationRepository(next rotation.Repository, store *basecache.Store) *RotationRepository {
	return &RotationRepository{next: next, store: store}
}

func (r *RotationRepository) GetPlan(ctx context.Context, gameID int64) (rotation.RotationPlan, bool, error) {
	return r.next.GetPlan(ctx, gameID)
}

func (r *RotationRepository) GetBattingOrder(ctx context.Context, gameID int64) (rotation.BattingOrder, bool, error) {
	return r.next.GetBattingOrder(ctx, gameID)
}

func (r *RotationRepository) GetRules(ctx context.Context, seasonID int64) (rotation.RuleConfiguration, bool, error) {
	got, err := basecache.Load(ctx, r.store, basecache.Key("rules", "season", seasonID), func(ctx context.Context) (lookup[rotation.RuleConfiguration], error) {
		item, exists, err := r.next.GetRules(ctx, seasonID)
		return lookup[rotation.RuleConfiguration]{value: item.Clone(), exists: exists}, err
	})
	if err != nil || !got.exists {
		return rotation.RuleConfiguration{}, false, err
	}
	return got.value.Clone(), true, nil
}

func (r *RotationRepository) SavePlan(ctx context.Context, gameID int64, plan rotation.RotationPlan) error {
	return r.next.SavePlan(ctx, gameID, plan)
}
