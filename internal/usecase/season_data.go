package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

// seasonData is loaded once per run and shared read-only by every game.
type seasonData struct {
	seasonID int64
	games    []game.Game
	players  []roster.Player
	rules    rotation.RuleConfiguration
}

type seasonLoader struct {
	gameRepo     game.Repository
	rosterRepo   roster.Repository
	rotationRepo rotation.Repository
	defaultRules rotation.RuleConfiguration
}

func (l seasonLoader) load(ctx context.Context, seasonID int64) (seasonData, error) {
	if seasonID <= 0 {
		return seasonData{}, fmt.Errorf("%w: season id must be greater than zero", ErrInvalidInput)
	}

	games, err := l.gameRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return seasonData{}, fmt.Errorf("list games by season: %w", err)
	}
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].Number != games[j].Number {
			return games[i].Number < games[j].Number
		}
		return games[i].ID < games[j].ID
	})

	players, err := l.rosterRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return seasonData{}, fmt.Errorf("list roster by season: %w", err)
	}

	rules, err := l.rules(ctx, seasonID)
	if err != nil {
		return seasonData{}, err
	}

	return seasonData{
		seasonID: seasonID,
		games:    games,
		players:  players,
		rules:    rules,
	}, nil
}

// rules prefers the season's stored configuration and falls back to the
// configured default.
func (l seasonLoader) rules(ctx context.Context, seasonID int64) (rotation.RuleConfiguration, error) {
	rules, exists, err := l.rotationRepo.GetRules(ctx, seasonID)
	if err != nil {
		return rotation.RuleConfiguration{}, fmt.Errorf("get rules: %w", err)
	}
	if !exists {
		rules = l.defaultRules
	}
	if err := rules.Validate(); err != nil {
		return rotation.RuleConfiguration{}, fmt.Errorf("%w: season=%d: %w", ErrInvalidInput, seasonID, err)
	}

	return rules.Clone(), nil
}

func (l seasonLoader) game(ctx context.Context, gameID int64) (game.Game, error) {
	if gameID <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id must be greater than zero", ErrInvalidInput)
	}

	item, exists, err := l.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return item, nil
}

// availability loads a game's records and rejects a second record for the
// same player.
func (l seasonLoader) availability(ctx context.Context, gameID int64) ([]roster.Availability, error) {
	records, err := l.rosterRepo.ListAvailabilityByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list availability by game: %w", err)
	}
	if _, err := roster.NewAvailabilityIndex(gameID, records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return records, nil
}

// storedPlan reads an applied plan. A record that cannot be decoded is
// reported as absent together with the decode error.
func (l seasonLoader) storedPlan(ctx context.Context, gameID int64) (rotation.RotationPlan, bool, error) {
	plan, exists, err := l.rotationRepo.GetPlan(ctx, gameID)
	if err != nil {
		if errors.Is(err, rotation.ErrMalformedRecord) {
			return rotation.RotationPlan{}, false, err
		}
		return rotation.RotationPlan{}, false, fmt.Errorf("get plan: %w", err)
	}

	return plan, exists, nil
}

// availableIDs lists roster players not marked unavailable for the game.
func availableIDs(gameID int64, players []roster.Player, availability []roster.Availability) []roster.PlayerID {
	idx := roster.IndexAvailability(gameID, availability)
	out := make([]roster.PlayerID, 0, len(players))
	for _, p := range players {
		if idx.For(p.ID).Available {
			out = append(out, p.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
