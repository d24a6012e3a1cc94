package postgres

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

type rotationPlanTableModel struct {
	GameID    int64      `db:"game_id"`
	Plan      string     `db:"plan"`
	AppliedAt time.Time  `db:"applied_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type rotationPlanInsertModel struct {
	GameID int64  `db:"game_id"`
	Plan   string `db:"plan"`
}

type battingOrderTableModel struct {
	GameID    int64         `db:"game_id"`
	PlayerIDs pq.Int64Array `db:"player_ids"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

type seasonRulesTableModel struct {
	SeasonID                  int64          `db:"season_id"`
	RequiredPositions         pq.StringArray `db:"required_positions"`
	PositionCategories        string         `db:"position_categories"`
	CatcherPositions          pq.StringArray `db:"catcher_positions"`
	NoConsecutiveSameCategory bool           `db:"no_consecutive_same_category"`
	AllowRepeatedPosition     bool           `db:"allow_repeated_position"`
	EnforceBalance            bool           `db:"enforce_balance"`
	UpdatedAt                 time.Time      `db:"updated_at"`
	DeletedAt                 *time.Time     `db:"deleted_at"`
}

func encodePlan(plan rotation.RotationPlan) (string, error) {
	if plan.Innings == nil {
		plan = rotation.NewRotationPlan()
	}
	encoded, err := sonic.Marshal(plan)
	if err != nil {
		return "", crerr.Wrap(err, "encode rotation plan")
	}
	return string(encoded), nil
}

// decodePlan reads a JSONB plan column. Any shape problem is reported as
// rotation.ErrMalformedRecord.
func decodePlan(gameID int64, raw string) (rotation.RotationPlan, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return rotation.RotationPlan{}, crerr.Wrapf(rotation.ErrMalformedRecord, "plan for game=%d is empty", gameID)
	}

	var plan rotation.RotationPlan
	if err := sonic.Unmarshal([]byte(raw), &plan); err != nil {
		return rotation.RotationPlan{}, crerr.Wrapf(rotation.ErrMalformedRecord, "decode plan for game=%d: %v", gameID, err)
	}
	if plan.Innings == nil {
		return rotation.RotationPlan{}, crerr.Wrapf(rotation.ErrMalformedRecord, "plan for game=%d has no innings", gameID)
	}
	for inning, items := range plan.Innings {
		if inning <= 0 {
			return rotation.RotationPlan{}, crerr.Wrapf(rotation.ErrMalformedRecord, "plan for game=%d has inning %d", gameID, inning)
		}
		for _, a := range items {
			if a.PlayerID <= 0 || strings.TrimSpace(a.Position) == "" {
				return rotation.RotationPlan{}, crerr.Wrapf(rotation.ErrMalformedRecord, "plan for game=%d inning=%d has an incomplete assignment", gameID, inning)
			}
		}
	}

	return plan, nil
}

func decodeBattingOrder(row battingOrderTableModel) (rotation.BattingOrder, error) {
	seen := make(map[int64]struct{}, len(row.PlayerIDs))
	ids := make([]roster.PlayerID, 0, len(row.PlayerIDs))
	for _, id := range row.PlayerIDs {
		if id <= 0 {
			return rotation.BattingOrder{}, crerr.Wrapf(rotation.ErrMalformedRecord, "batting order for game=%d has player id %d", row.GameID, id)
		}
		if _, dup := seen[id]; dup {
			return rotation.BattingOrder{}, crerr.Wrapf(rotation.ErrMalformedRecord, "batting order for game=%d lists player %d twice", row.GameID, id)
		}
		seen[id] = struct{}{}
		ids = append(ids, roster.PlayerID(id))
	}

	return rotation.BattingOrder{PlayerIDs: ids}, nil
}

func decodeRules(row seasonRulesTableModel) (rotation.RuleConfiguration, error) {
	raw := make(map[string]string)
	if text := strings.TrimSpace(row.PositionCategories); text != "" {
		if err := sonic.Unmarshal([]byte(text), &raw); err != nil {
			return rotation.RuleConfiguration{}, crerr.Wrapf(rotation.ErrMalformedRecord, "decode position categories for season=%d: %v", row.SeasonID, err)
		}
	}

	categories := make(map[string]rotation.FieldCategory, len(raw))
	for position, value := range raw {
		category, err := rotation.ParseFieldCategory(value)
		if err != nil {
			return rotation.RuleConfiguration{}, crerr.Wrapf(rotation.ErrMalformedRecord, "season=%d position=%s: %v", row.SeasonID, position, err)
		}
		categories[rotation.NormalizePosition(position)] = category
	}

	return rotation.RuleConfiguration{
		RequiredPositions:         append([]string(nil), row.RequiredPositions...),
		PositionCategory:          categories,
		CatcherPositions:          append([]string(nil), row.CatcherPositions...),
		NoConsecutiveSameCategory: row.NoConsecutiveSameCategory,
		AllowRepeatedPosition:     row.AllowRepeatedPosition,
		EnforceBalance:            row.EnforceBalance,
	}, nil
}
