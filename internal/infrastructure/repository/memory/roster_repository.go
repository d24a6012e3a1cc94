package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
)

type RosterRepository struct {
	mu              sync.RWMutex
	playersBySeason map[int64][]roster.Player
	availByGame     map[int64][]roster.Availability
}

func NewRosterRepository(players []roster.Player, availability []roster.Availability) *RosterRepository {
	playersBySeason := make(map[int64][]roster.Player)
	for _, p := range players {
		playersBySeason[p.SeasonID] = append(playersBySeason[p.SeasonID], p)
	}
	for seasonID := range playersBySeason {
		items := playersBySeason[seasonID]
		sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	}

	availByGame := make(map[int64][]roster.Availability)
	for _, a := range availability {
		availByGame[a.GameID] = append(availByGame[a.GameID], a)
	}

	return &RosterRepository{
		playersBySeason: playersBySeason,
		availByGame:     availByGame,
	}
}

func (r *RosterRepository) ListBySeason(_ context.Context, seasonID int64) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.playersBySeason[seasonID]
	out := make([]roster.Player, 0, len(items))
	out = append(out, items...)

	return out, nil
}

func (r *RosterRepository) ListAvailabilityByGame(_ context.Context, gameID int64) ([]roster.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.availByGame[gameID]
	out := make([]roster.Availability, 0, len(items))
	out = append(out, items...)

	return out, nil
}
