package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	qb "github.com/riskibarqy/rotation-engine/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

var gameSelectColumns = []string{
	"id",
	"season_id",
	"game_number",
	"opponent",
	"innings",
	"played_at",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListBySeason(ctx context.Context, seasonID int64) ([]game.Game, error) {
	q := qb.Select(gameSelectColumns...).From("games").
		Where(liveRow("season_id", seasonID)...).
		OrderBy("game_number", "id")
	rows, err := selectAll[gameTableModel](ctx, r.db, q, "games", "season", seasonID)
	if err != nil {
		return nil, err
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	q := qb.Select(gameSelectColumns...).From("games").Where(liveRow("id", gameID)...)
	row, found, err := getOne[gameTableModel](ctx, r.db, q, "game", "id", gameID)
	if err != nil || !found {
		return game.Game{}, false, err
	}
	return gameFromRow(row), true, nil
}

func gameFromRow(row gameTableModel) game.Game {
	out := game.Game{
		ID:       row.ID,
		SeasonID: row.SeasonID,
		Number:   row.GameNumber,
		Opponent: row.Opponent,
		Innings:  row.Innings,
	}
	if row.PlayedAt.Valid {
		out.PlayedAt = row.PlayedAt.Time
	}
	return out
}
