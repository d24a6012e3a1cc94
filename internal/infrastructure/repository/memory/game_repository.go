package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/rotation-engine/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	items  map[int64]game.Game
	orders []int64
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[int64]game.Game, len(games))
	orders := make([]int64, 0, len(games))

	for _, g := range games {
		if _, exists := items[g.ID]; !exists {
			orders = append(orders, g.ID)
		}
		items[g.ID] = g
	}

	return &GameRepository{
		items:  items,
		orders: orders,
	}
}

func (r *GameRepository) ListBySeason(_ context.Context, seasonID int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.orders))
	for _, id := range r.orders {
		g := r.items[id]
		if g.SeasonID != seasonID {
			continue
		}
		out = append(out, g)
	}

	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}

	return g, true, nil
}
