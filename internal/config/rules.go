package config

import (
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

// rulesFile is the JSON shape of a league rule configuration.
type rulesFile struct {
	RequiredPositions         []string          `json:"required_positions" validate:"required,min=1,dive,required"`
	PositionCategory          map[string]string `json:"position_category" validate:"required,min=1,dive,keys,required,endkeys,required"`
	CatcherPositions          []string          `json:"catcher_positions" validate:"omitempty,dive,required"`
	NoConsecutiveSameCategory *bool             `json:"no_consecutive_same_category"`
	AllowRepeatedPosition     bool              `json:"allow_repeated_position"`
	EnforceBalance            bool              `json:"enforce_balance"`
}

// LoadRules reads a rule configuration file. An empty path yields the
// default rules. Omitting catcher_positions keeps the default catcher slot;
// an explicit empty list disables the catcher check.
func LoadRules(path string) (rotation.RuleConfiguration, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return rotation.DefaultRules(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rotation.RuleConfiguration{}, fmt.Errorf("read rules file: %w", err)
	}

	return ParseRules(raw)
}

func ParseRules(raw []byte) (rotation.RuleConfiguration, error) {
	var payload rulesFile
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return rotation.RuleConfiguration{}, fmt.Errorf("decode rules file: %w", err)
	}
	if err := validator.New().Struct(payload); err != nil {
		return rotation.RuleConfiguration{}, fmt.Errorf("%w: %w", rotation.ErrInvalidRules, err)
	}

	defaults := rotation.DefaultRules()
	rules := rotation.RuleConfiguration{
		RequiredPositions:         append([]string(nil), payload.RequiredPositions...),
		PositionCategory:          make(map[string]rotation.FieldCategory, len(payload.PositionCategory)),
		CatcherPositions:          defaults.CatcherPositions,
		NoConsecutiveSameCategory: defaults.NoConsecutiveSameCategory,
		AllowRepeatedPosition:     payload.AllowRepeatedPosition,
		EnforceBalance:            payload.EnforceBalance,
	}
	if payload.CatcherPositions != nil {
		rules.CatcherPositions = append([]string{}, payload.CatcherPositions...)
	}
	if payload.NoConsecutiveSameCategory != nil {
		rules.NoConsecutiveSameCategory = *payload.NoConsecutiveSameCategory
	}

	for position, value := range payload.PositionCategory {
		category, err := rotation.ParseFieldCategory(value)
		if err != nil {
			return rotation.RuleConfiguration{}, fmt.Errorf("%w: position %s: %w", rotation.ErrInvalidRules, position, err)
		}
		rules.PositionCategory[rotation.NormalizePosition(position)] = category
	}

	if err := rules.Validate(); err != nil {
		return rotation.RuleConfiguration{}, err
	}

	return rules, nil
}
