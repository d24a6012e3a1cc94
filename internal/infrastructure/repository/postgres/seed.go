package postgres

import (
	"context"
	"fmt"
	"sort"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/infrastructure/repository/memory"
)

// BootstrapSeed imports a dataset into an empty season. Seasons that already
// have players are left alone. Everything is written in one transaction.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, data memory.Dataset) error {
	seasons := seasonsOf(data)
	if len(seasons) == 0 {
		return nil
	}

	var count int
	query, args, err := sqlx.In(`SELECT COUNT(1) FROM players WHERE season_id IN (?) AND deleted_at IS NULL`, seasons)
	if err != nil {
		return fmt.Errorf("build count players query: %w", err)
	}
	if err := db.GetContext(ctx, &count, db.Rebind(query), args...); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label, statement string, arg map[string]any) error {
		sqlQuery, args, err := sqlx.Named(statement, arg)
		if err != nil {
			return fmt.Errorf("bind seed %s query: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, p := range data.Players {
		if err := exec(fmt.Sprintf("player %d", p.ID), `
INSERT INTO players (id, season_id, jersey_number, display_name, can_play_catcher)
VALUES (:id, :season_id, :jersey_number, :display_name, :can_play_catcher)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":               int64(p.ID),
			"season_id":        p.SeasonID,
			"jersey_number":    p.JerseyNumber,
			"display_name":     p.DisplayName,
			"can_play_catcher": p.CanPlayCatcher,
		}); err != nil {
			return err
		}
	}

	for _, g := range data.Games {
		var playedAt any
		if !g.PlayedAt.IsZero() {
			playedAt = g.PlayedAt
		}
		if err := exec(fmt.Sprintf("game %d", g.ID), `
INSERT INTO games (id, season_id, game_number, opponent, innings, played_at)
VALUES (:id, :season_id, :game_number, :opponent, :innings, :played_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          g.ID,
			"season_id":   g.SeasonID,
			"game_number": g.Number,
			"opponent":    g.Opponent,
			"innings":     g.Innings,
			"played_at":   playedAt,
		}); err != nil {
			return err
		}
	}

	for _, a := range data.Availability {
		if err := exec(fmt.Sprintf("availability game=%d player=%d", a.GameID, a.PlayerID), `
INSERT INTO game_availability (game_id, player_id, is_available, can_play_catcher)
VALUES (:game_id, :player_id, :is_available, :can_play_catcher)
ON CONFLICT (game_id, player_id) DO NOTHING`, map[string]any{
			"game_id":          a.GameID,
			"player_id":        int64(a.PlayerID),
			"is_available":     a.Available,
			"can_play_catcher": a.CanPlayCatcher,
		}); err != nil {
			return err
		}
	}

	for _, gameID := range sortedKeys(data.Plans) {
		encoded, err := encodePlan(data.Plans[gameID])
		if err != nil {
			return err
		}
		if err := exec(fmt.Sprintf("plan %d", gameID), `
INSERT INTO rotation_plans (game_id, plan)
VALUES (:game_id, CAST(:plan AS JSONB))
ON CONFLICT (game_id) DO NOTHING`, map[string]any{
			"game_id": gameID,
			"plan":    encoded,
		}); err != nil {
			return err
		}
	}

	for _, gameID := range sortedKeys(data.Orders) {
		ids := make(pq.Int64Array, 0, len(data.Orders[gameID].PlayerIDs))
		for _, id := range data.Orders[gameID].PlayerIDs {
			ids = append(ids, int64(id))
		}
		if err := exec(fmt.Sprintf("batting order %d", gameID), `
INSERT INTO batting_orders (game_id, player_ids)
VALUES (:game_id, :player_ids)
ON CONFLICT (game_id) DO NOTHING`, map[string]any{
			"game_id":    gameID,
			"player_ids": ids,
		}); err != nil {
			return err
		}
	}

	for _, seasonID := range sortedKeys(data.Rules) {
		rules := data.Rules[seasonID]
		categories, err := encodeCategories(rules)
		if err != nil {
			return err
		}
		if err := exec(fmt.Sprintf("rules %d", seasonID), `
INSERT INTO season_rules (
    season_id, required_positions, position_categories, catcher_positions,
    no_consecutive_same_category, allow_repeated_position, enforce_balance
)
VALUES (
    :season_id, :required_positions, CAST(:position_categories AS JSONB), :catcher_positions,
    :no_consecutive_same_category, :allow_repeated_position, :enforce_balance
)
ON CONFLICT (season_id) DO NOTHING`, map[string]any{
			"season_id":                    seasonID,
			"required_positions":           pq.StringArray(rules.RequiredPositions),
			"position_categories":          categories,
			"catcher_positions":            pq.StringArray(rules.CatcherPositions),
			"no_consecutive_same_category": rules.NoConsecutiveSameCategory,
			"allow_repeated_position":      rules.AllowRepeatedPosition,
			"enforce_balance":              rules.EnforceBalance,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

func encodeCategories(rules rotation.RuleConfiguration) (string, error) {
	raw := make(map[string]string, len(rules.PositionCategory))
	for position, category := range rules.PositionCategory {
		raw[position] = string(category)
	}
	encoded, err := sonic.MarshalString(raw)
	if err != nil {
		return "", fmt.Errorf("encode position categories: %w", err)
	}
	return encoded, nil
}

func seasonsOf(data memory.Dataset) []int64 {
	seen := make(map[int64]struct{})
	for _, p := range data.Players {
		seen[p.SeasonID] = struct{}{}
	}
	for _, g := range data.Games {
		seen[g.SeasonID] = struct{}{}
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
