// Package fairness reduces a season of applied plans and batting orders into
// per-player distribution statistics.
package fairness

import (
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

// SlotCounts maps a 1-based batting slot to the number of games batted there.
type SlotCounts map[int]int

// FieldingStats counts innings per category. OUT innings are not counted.
type FieldingStats struct {
	Infield  int  `json:"infield_innings"`
	Outfield int  `json:"outfield_innings"`
	Bench    int  `json:"bench_innings"`
	Total    int  `json:"total_innings"`
	HasData  bool `json:"has_data"`
}

// Share returns the fraction of counted innings spent in a category. The
// second value is false when there is nothing to divide by.
func (s FieldingStats) Share(category rotation.FieldCategory) (float64, bool) {
	if !s.HasData || s.Total <= 0 {
		return 0, false
	}
	switch category {
	case rotation.CategoryInfield:
		return float64(s.Infield) / float64(s.Total), true
	case rotation.CategoryOutfield:
		return float64(s.Outfield) / float64(s.Total), true
	case rotation.CategoryBench:
		return float64(s.Bench) / float64(s.Total), true
	default:
		return 0, false
	}
}

func (s FieldingStats) add(o FieldingStats) FieldingStats {
	out := FieldingStats{
		Infield:  s.Infield + o.Infield,
		Outfield: s.Outfield + o.Outfield,
		Bench:    s.Bench + o.Bench,
		Total:    s.Total + o.Total,
	}
	out.HasData = out.Total > 0
	return out
}

// BattingGame is one game's input to BattingDistribution. A nil Order means
// no batting order was recorded.
type BattingGame struct {
	GameID int64
	Order  *rotation.BattingOrder
	Roster []roster.PlayerID
}

// FieldingGame is one game's input to FieldingDistribution. A nil Plan or a
// non-positive Innings means the game has no usable rotation data.
type FieldingGame struct {
	GameID    int64
	Plan      *rotation.RotationPlan
	Innings   int
	Rules     rotation.RuleConfiguration
	Available []roster.PlayerID
}

func (g FieldingGame) usable() bool {
	return g.Plan != nil && g.Innings > 0
}

// GameBalance reports how evenly one game spread field time.
type GameBalance struct {
	GameID         int64 `json:"game_id"`
	InfieldSpread  int   `json:"infield_spread"`
	OutfieldSpread int   `json:"outfield_spread"`
	BenchSpread    int   `json:"bench_spread"`
}

// Balanced is true when every spread is at most one inning.
func (b GameBalance) Balanced() bool {
	return b.InfieldSpread <= 1 && b.OutfieldSpread <= 1 && b.BenchSpread <= 1
}

// SeasonGame bundles what the season report needs for one game.
type SeasonGame struct {
	GameID    int64
	Innings   int
	Plan      *rotation.RotationPlan
	Order     *rotation.BattingOrder
	Roster    []roster.PlayerID
	Available []roster.PlayerID
}

// Report is the season fairness report.
type Report struct {
	Batting         map[roster.PlayerID]SlotCounts    `json:"batting"`
	Fielding        map[roster.PlayerID]FieldingStats `json:"fielding"`
	Balance         []GameBalance                     `json:"balance"`
	SkippedBatting  []int64                           `json:"skipped_batting,omitempty"`
	SkippedFielding []int64                           `json:"skipped_fielding,omitempty"`
	// UncategorizedFielding lists games whose plan uses a position with no
	// category; those assignments are left out of Fielding.
	UncategorizedFielding []int64 `json:"uncategorized_fielding,omitempty"`
}

func NewReport() Report {
	return Report{
		Batting:  make(map[roster.PlayerID]SlotCounts),
		Fielding: make(map[roster.PlayerID]FieldingStats),
	}
}
