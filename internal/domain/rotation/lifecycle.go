package rotation

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
)

var (
	ErrNotValidated   = errors.New("plan must be validated before it is applied")
	ErrAlreadyApplied = errors.New("plan version is already applied")
	ErrNotApplied     = errors.New("only an applied plan can be revised")
)

// PlanState is the lifecycle state of one plan version.
type PlanState string

const (
	StateDraft                 PlanState = "draft"
	StateValidatedClean        PlanState = "validated_clean"
	StateValidatedWithWarnings PlanState = "validated_with_warnings"
	StateValidatedInvalid      PlanState = "validated_invalid"
	StateApplied               PlanState = "applied"
)

func (s PlanState) Validated() bool {
	switch s {
	case StateValidatedClean, StateValidatedWithWarnings, StateValidatedInvalid:
		return true
	default:
		return false
	}
}

// StateFor maps a validation outcome onto a Validated-* state.
func StateFor(result ValidationResult) PlanState {
	switch {
	case result.HasErrors():
		return StateValidatedInvalid
	case result.HasWarnings():
		return StateValidatedWithWarnings
	default:
		return StateValidatedClean
	}
}

// PlanVersion is an immutable snapshot of a plan and where it sits in the
// lifecycle. Every transition returns a new value.
type PlanVersion struct {
	GameID  int64             `json:"game_id"`
	Version int               `json:"version"`
	State   PlanState         `json:"state"`
	Plan    RotationPlan      `json:"plan"`
	Result  *ValidationResult `json:"result,omitempty"`
}

func NewDraft(gameID int64, plan RotationPlan) PlanVersion {
	return PlanVersion{
		GameID:  gameID,
		Version: 1,
		State:   StateDraft,
		Plan:    plan.Clone(),
	}
}

// Edit applies fn to a copy of the plan and returns to Draft.
func (v PlanVersion) Edit(fn func(plan *RotationPlan)) (PlanVersion, error) {
	if v.State == StateApplied {
		return PlanVersion{}, fmt.Errorf("%w: revise game=%d version=%d first", ErrAlreadyApplied, v.GameID, v.Version)
	}

	next := v
	next.Plan = v.Plan.Clone()
	if fn != nil {
		fn(&next.Plan)
	}
	next.State = StateDraft
	next.Result = nil
	return next, nil
}

// Validate runs the validator and records the outcome.
func (v PlanVersion) Validate(
	innings int,
	players []roster.Player,
	availability []roster.Availability,
	rules RuleConfiguration,
) (PlanVersion, error) {
	if v.State == StateApplied {
		return PlanVersion{}, fmt.Errorf("%w: game=%d version=%d", ErrAlreadyApplied, v.GameID, v.Version)
	}

	result := Validate(v.Plan, innings, players, availability, rules)
	next := v
	next.Result = &result
	next.State = StateFor(result)
	return next, nil
}

// Apply marks a validated version as persisted. Whether a plan with errors
// may be applied is the caller's policy.
func (v PlanVersion) Apply() (PlanVersion, error) {
	switch {
	case v.State == StateApplied:
		return PlanVersion{}, fmt.Errorf("%w: game=%d version=%d", ErrAlreadyApplied, v.GameID, v.Version)
	case !v.State.Validated():
		return PlanVersion{}, fmt.Errorf("%w: game=%d state=%s", ErrNotValidated, v.GameID, v.State)
	}

	next := v
	next.State = StateApplied
	return next, nil
}

// Revise starts a fresh Draft from an applied version.
func (v PlanVersion) Revise() (PlanVersion, error) {
	if v.State != StateApplied {
		return PlanVersion{}, fmt.Errorf("%w: game=%d state=%s", ErrNotApplied, v.GameID, v.State)
	}

	return PlanVersion{
		GameID:  v.GameID,
		Version: v.Version + 1,
		State:   StateDraft,
		Plan:    v.Plan.Clone(),
	}, nil
}
