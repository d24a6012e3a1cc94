package rotation

import "context"

// Repository exposes persisted (applied) plans, batting orders and the
// season rule configuration. Draft plans are never stored.
//
// A stored record that cannot be decoded is reported with an error wrapping
// ErrMalformedRecord so season reports can skip just that game.
type Repository interface {
	GetPlan(ctx context.Context, gameID int64) (RotationPlan, bool, error)
	GetBattingOrder(ctx context.Context, gameID int64) (BattingOrder, bool, error)
	GetRules(ctx context.Context, seasonID int64) (RuleConfiguration, bool, error)
	SavePlan(ctx context.Context, gameID int64, plan RotationPlan) error
}
