package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	qb "github.com/riskibarqy/rotation-engine/internal/platform/querybuilder"
)

type RotationRepository struct {
	db *sqlx.DB
}

var rotationPlanSelectColumns = []string{
	"game_id",
	"plan::text AS plan",
	"applied_at",
	"updated_at",
	"deleted_at",
}

var battingOrderSelectColumns = []string{
	"game_id",
	"player_ids",
	"updated_at",
	"deleted_at",
}

var seasonRulesSelectColumns = []string{
	"season_id",
	"required_positions",
	"position_categories::text AS position_categories",
	"catcher_positions",
	"no_consecutive_same_category",
	"allow_repeated_position",
	"enforce_balance",
	"updated_at",
	"deleted_at",
}

func NewRotationRepository(db *sqlx.DB) *RotationRepository {
	return &RotationRepository{db: db}
}

// GetPlan decodes the stored JSONB plan. A row that cannot be decoded is
// reported with rotation.ErrMalformedRecord.
func (r *RotationRepository) GetPlan(ctx context.Context, gameID int64) (rotation.RotationPlan, bool, error) {
	q := qb.Select(rotationPlanSelectColumns...).From("rotation_plans").Where(liveRow("game_id", gameID)...)
	row, found, err := getOne[rotationPlanTableModel](ctx, r.db, q, "rotation plan", "game", gameID)
	if err != nil || !found {
		return rotation.RotationPlan{}, false, err
	}

	plan, err := decodePlan(row.GameID, row.Plan)
	if err != nil {
		return rotation.RotationPlan{}, false, err
	}
	return plan, true, nil
}

func (r *RotationRepository) GetBattingOrder(ctx context.Context, gameID int64) (rotation.BattingOrder, bool, error) {
	q := qb.Select(battingOrderSelectColumns...).From("batting_orders").Where(liveRow("game_id", gameID)...)
	row, found, err := getOne[battingOrderTableModel](ctx, r.db, q, "batting order", "game", gameID)
	if err != nil || !found {
		return rotation.BattingOrder{}, false, err
	}

	order, err := decodeBattingOrder(row)
	if err != nil {
		return rotation.BattingOrder{}, false, err
	}
	return order, true, nil
}

func (r *RotationRepository) GetRules(ctx context.Context, seasonID int64) (rotation.RuleConfiguration, bool, error) {
	q := qb.Select(seasonRulesSelectColumns...).From("season_rules").Where(liveRow("season_id", seasonID)...)
	row, found, err := getOne[seasonRulesTableModel](ctx, r.db, q, "season rules", "season", seasonID)
	if err != nil || !found {
		return rotation.RuleConfiguration{}, false, err
	}

	rules, err := decodeRules(row)
	if err != nil {
		return rotation.RuleConfiguration{}, false, err
	}
	return rules, true, nil
}

// SavePlan upserts the applied plan of a game.
func (r *RotationRepository) SavePlan(ctx context.Context, gameID int64, plan rotation.RotationPlan) error {
	encoded, err := encodePlan(plan)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("rotation_plans", rotationPlanInsertModel{GameID: gameID, Plan: encoded}, `ON CONFLICT (game_id)
DO UPDATE SET
    plan = EXCLUDED.plan,
    applied_at = NOW(),
    updated_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return crerr.Wrap(err, "build rotation plan upsert query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert rotation plan for game=%d", gameID)
	}

	return nil
}
