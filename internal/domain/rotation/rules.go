package rotation

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidRules          = errors.New("invalid rule configuration")
	ErrUnmappedRequiredSlot  = errors.New("required position has no field category")
	ErrSentinelAsRequirement = errors.New("sentinel cannot be a required position")
)

// Default position names used by DefaultRules.
const (
	PositionPitcher     = "P"
	PositionCatcher     = "C"
	PositionFirstBase   = "1B"
	PositionSecondBase  = "2B"
	PositionThirdBase   = "3B"
	PositionShortstop   = "SS"
	PositionLeftField   = "LF"
	PositionRightField  = "RF"
	PositionLeftCenter  = "LC"
	PositionRightCenter = "RC"
)

// RuleConfiguration is league-supplied, read-only rule data.
type RuleConfiguration struct {
	RequiredPositions         []string
	PositionCategory          map[string]FieldCategory
	CatcherPositions          []string
	NoConsecutiveSameCategory bool
	AllowRepeatedPosition     bool
	EnforceBalance            bool
}

func DefaultRules() RuleConfiguration {
	return RuleConfiguration{
		RequiredPositions: []string{
			PositionPitcher,
			PositionCatcher,
			PositionFirstBase,
			PositionSecondBase,
			PositionThirdBase,
			PositionShortstop,
			PositionLeftField,
			PositionRightField,
		},
		PositionCategory: map[string]FieldCategory{
			PositionPitcher:     CategoryInfield,
			PositionFirstBase:   CategoryInfield,
			PositionSecondBase:  CategoryInfield,
			PositionThirdBase:   CategoryInfield,
			PositionShortstop:   CategoryInfield,
			PositionCatcher:     CategoryOutfield,
			PositionLeftField:   CategoryOutfield,
			PositionRightField:  CategoryOutfield,
			PositionLeftCenter:  CategoryOutfield,
			PositionRightCenter: CategoryOutfield,
			PositionBench:       CategoryBench,
			PositionOut:         CategoryOut,
		},
		CatcherPositions:          []string{PositionCatcher},
		NoConsecutiveSameCategory: true,
		AllowRepeatedPosition:     false,
	}
}

// Validate checks the configuration itself. Plans are checked by Validate.
func (r RuleConfiguration) Validate() error {
	for position, category := range r.PositionCategory {
		if _, ok := AllCategories[category]; !ok {
			return fmt.Errorf("%w: position=%s category=%q", ErrInvalidRules, position, category)
		}
		switch NormalizePosition(position) {
		case PositionBench:
			if category != CategoryBench {
				return fmt.Errorf("%w: %s must map to %s", ErrInvalidRules, PositionBench, CategoryBench)
			}
		case PositionOut:
			if category != CategoryOut {
				return fmt.Errorf("%w: %s must map to %s", ErrInvalidRules, PositionOut, CategoryOut)
			}
		}
	}

	seen := make(map[string]struct{}, len(r.RequiredPositions))
	for _, position := range r.RequiredPositions {
		position = NormalizePosition(position)
		if position == "" {
			return fmt.Errorf("%w: empty required position", ErrInvalidRules)
		}
		if IsSentinel(position) {
			return fmt.Errorf("%w: %s", ErrSentinelAsRequirement, position)
		}
		if _, dup := seen[position]; dup {
			return fmt.Errorf("%w: required position %s listed twice", ErrInvalidRules, position)
		}
		seen[position] = struct{}{}

		category, ok := r.CategoryOf(position)
		if !ok || !category.Fielded() {
			return fmt.Errorf("%w: %s", ErrUnmappedRequiredSlot, position)
		}
	}

	for _, position := range r.CatcherPositions {
		if _, ok := r.CategoryOf(position); !ok {
			return fmt.Errorf("%w: catcher position %s has no field category", ErrInvalidRules, position)
		}
	}

	return nil
}

// CategoryOf resolves a slot name. The sentinels always resolve.
func (r RuleConfiguration) CategoryOf(position string) (FieldCategory, bool) {
	position = NormalizePosition(position)
	if category, ok := r.PositionCategory[position]; ok {
		return category, true
	}
	switch position {
	case PositionBench:
		return CategoryBench, true
	case PositionOut:
		return CategoryOut, true
	default:
		return "", false
	}
}

func (r RuleConfiguration) RequiresCatcher(position string) bool {
	position = NormalizePosition(position)
	for _, p := range r.CatcherPositions {
		if NormalizePosition(p) == position {
			return true
		}
	}
	return false
}

func (r RuleConfiguration) sortedRequired() []string {
	out := make([]string, 0, len(r.RequiredPositions))
	seen := make(map[string]struct{}, len(r.RequiredPositions))
	for _, p := range r.RequiredPositions {
		p = NormalizePosition(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (r RuleConfiguration) Clone() RuleConfiguration {
	out := r
	out.RequiredPositions = append([]string(nil), r.RequiredPositions...)
	out.CatcherPositions = append([]string(nil), r.CatcherPositions...)
	out.PositionCategory = make(map[string]FieldCategory, len(r.PositionCategory))
	for k, v := range r.PositionCategory {
		out.PositionCategory[k] = v
	}
	return out
}
