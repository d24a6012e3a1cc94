package fairness

import (
	"sort"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

// BattingDistribution counts, per player, how many games they batted in each
// slot. Roster members always get an entry, possibly empty.
func BattingDistribution(games []BattingGame) map[roster.PlayerID]SlotCounts {
	out := make(map[roster.PlayerID]SlotCounts)
	for _, g := range games {
		for _, id := range g.Roster {
			if _, ok := out[id]; !ok {
				out[id] = make(SlotCounts)
			}
		}
		if g.Order == nil {
			continue
		}
		for i, id := range g.Order.PlayerIDs {
			counts, ok := out[id]
			if !ok {
				counts = make(SlotCounts)
				out[id] = counts
			}
			counts[i+1]++
		}
	}
	return out
}

// FieldingDistribution counts infield, outfield and bench innings per player.
// OUT marks absence and never adds to Total. Positions without a category are
// skipped.
func FieldingDistribution(games []FieldingGame) map[roster.PlayerID]FieldingStats {
	out := make(map[roster.PlayerID]FieldingStats)
	for _, g := range games {
		if !g.usable() {
			continue
		}
		for id, stats := range gameFielding(g) {
			out[id] = out[id].add(stats)
		}
	}
	return out
}

func gameFielding(g FieldingGame) map[roster.PlayerID]FieldingStats {
	out := make(map[roster.PlayerID]FieldingStats)
	for inning := 1; inning <= g.Innings; inning++ {
		for _, a := range g.Plan.Resolved(inning) {
			category, ok := g.Rules.CategoryOf(a.Position)
			if !ok {
				continue
			}
			stats := out[a.PlayerID]
			switch category {
			case rotation.CategoryInfield:
				stats.Infield++
				stats.Total++
			case rotation.CategoryOutfield:
				stats.Outfield++
				stats.Total++
			case rotation.CategoryBench:
				stats.Bench++
				stats.Total++
			}
			stats.HasData = stats.Total > 0
			out[a.PlayerID] = stats
		}
	}
	return out
}

func hasUncategorized(g FieldingGame) bool {
	for inning := 1; inning <= g.Innings; inning++ {
		for _, a := range g.Plan.Resolved(inning) {
			if _, ok := g.Rules.CategoryOf(a.Position); !ok {
				return true
			}
		}
	}
	return false
}

// BalanceOf measures one game's spread of infield and outfield innings across
// available players, and of bench innings across players benched at all.
// When Available is empty, every player with a non-OUT slot counts.
func BalanceOf(g FieldingGame) (GameBalance, bool) {
	if !g.usable() {
		return GameBalance{}, false
	}

	perGame := gameFielding(g)
	available := g.Available
	if len(available) == 0 {
		for id, stats := range perGame {
			if stats.Total > 0 {
				available = append(available, id)
			}
		}
	}

	balance := GameBalance{GameID: g.GameID}
	if len(available) == 0 {
		return balance, true
	}

	infield := make([]int, 0, len(available))
	outfield := make([]int, 0, len(available))
	var bench []int
	for _, id := range available {
		stats := perGame[id]
		infield = append(infield, stats.Infield)
		outfield = append(outfield, stats.Outfield)
		if stats.Bench > 0 {
			bench = append(bench, stats.Bench)
		}
	}
	balance.InfieldSpread = spread(infield)
	balance.OutfieldSpread = spread(outfield)
	balance.BenchSpread = spread(bench)
	return balance, true
}

func spread(values []int) int {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// GameReport is the map step: one game's contribution to the season report.
func GameReport(g SeasonGame, rules rotation.RuleConfiguration) Report {
	report := NewReport()

	if g.Order == nil {
		report.SkippedBatting = append(report.SkippedBatting, g.GameID)
	}
	report.Batting = BattingDistribution([]BattingGame{{GameID: g.GameID, Order: g.Order, Roster: g.Roster}})

	fielding := FieldingGame{
		GameID:    g.GameID,
		Plan:      g.Plan,
		Innings:   g.Innings,
		Rules:     rules,
		Available: g.Available,
	}
	if !fielding.usable() {
		report.SkippedFielding = append(report.SkippedFielding, g.GameID)
	} else if hasUncategorized(fielding) {
		report.UncategorizedFielding = append(report.UncategorizedFielding, g.GameID)
	}
	report.Fielding = FieldingDistribution([]FieldingGame{fielding})
	for _, id := range g.Roster {
		if _, ok := report.Fielding[id]; !ok {
			report.Fielding[id] = FieldingStats{}
		}
	}
	if balance, ok := BalanceOf(fielding); ok {
		report.Balance = append(report.Balance, balance)
	}

	return report
}

// Merge is the reduce step: element-wise addition of counters. It is
// commutative and associative up to the ordering of the game ID lists, which
// are kept sorted.
func Merge(a, b Report) Report {
	out := NewReport()
	for _, src := range []Report{a, b} {
		for id, counts := range src.Batting {
			dst, ok := out.Batting[id]
			if !ok {
				dst = make(SlotCounts)
				out.Batting[id] = dst
			}
			for slot, n := range counts {
				dst[slot] += n
			}
		}
		for id, stats := range src.Fielding {
			out.Fielding[id] = out.Fielding[id].add(stats)
		}
		out.Balance = append(out.Balance, src.Balance...)
		out.SkippedBatting = append(out.SkippedBatting, src.SkippedBatting...)
		out.SkippedFielding = append(out.SkippedFielding, src.SkippedFielding...)
		out.UncategorizedFielding = append(out.UncategorizedFielding, src.UncategorizedFielding...)
	}

	sort.Slice(out.Balance, func(i, j int) bool { return out.Balance[i].GameID < out.Balance[j].GameID })
	sortIDs(out.SkippedBatting)
	sortIDs(out.SkippedFielding)
	sortIDs(out.UncategorizedFielding)
	return out
}

// Build maps every game and reduces the partial reports.
func Build(games []SeasonGame, rules rotation.RuleConfiguration) Report {
	report := NewReport()
	for _, g := range games {
		report = Merge(report, GameReport(g, rules))
	}
	return report
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
