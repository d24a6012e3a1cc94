package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	qb "github.com/riskibarqy/rotation-engine/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"season_id",
	"jersey_number",
	"display_name",
	"can_play_catcher",
	"created_at",
	"updated_at",
	"deleted_at",
}

var availabilitySelectColumns = []string{
	"game_id",
	"player_id",
	"is_available",
	"can_play_catcher",
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListBySeason(ctx context.Context, seasonID int64) ([]roster.Player, error) {
	q := qb.Select(playerSelectColumns...).From("players").
		Where(liveRow("season_id", seasonID)...).
		OrderBy("id")
	rows, err := selectAll[playerTableModel](ctx, r.db, q, "players", "season", seasonID)
	if err != nil {
		return nil, err
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			ID:             roster.PlayerID(row.ID),
			SeasonID:       row.SeasonID,
			JerseyNumber:   row.JerseyNumber,
			DisplayName:    row.DisplayName,
			CanPlayCatcher: row.CanPlayCatcher,
		})
	}
	return out, nil
}

// ListAvailabilityByGame returns the explicit records only; players without
// one are handled by roster.DefaultAvailability.
func (r *RosterRepository) ListAvailabilityByGame(ctx context.Context, gameID int64) ([]roster.Availability, error) {
	q := qb.Select(availabilitySelectColumns...).From("game_availability").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("player_id")
	rows, err := selectAll[availabilityTableModel](ctx, r.db, q, "availability", "game", gameID)
	if err != nil {
		return nil, err
	}

	out := make([]roster.Availability, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Availability{
			GameID:         row.GameID,
			PlayerID:       roster.PlayerID(row.PlayerID),
			Available:      row.IsAvailable,
			CanPlayCatcher: row.CanPlayCatcher,
		})
	}
	return out, nil
}
