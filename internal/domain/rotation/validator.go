package rotation

import (
	"sort"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
)

// Validate checks one game's plan against the rules for innings 1..innings.
// It never fails: every problem with the plan is a ValidationIssue. Inputs
// are not mutated. The game is taken from the first availability record;
// records for any other game are ignored.
func Validate(
	plan RotationPlan,
	innings int,
	players []roster.Player,
	availability []roster.Availability,
	rules RuleConfiguration,
) ValidationResult {
	v := newValidation(players, availability, rules)
	for inning := 1; inning <= innings; inning++ {
		v.checkInning(inning, plan.Innings[inning])
	}
	v.checkRepeatedPositions()
	v.checkConsecutiveCategories(innings)

	return v.result()
}

type validation struct {
	rules        RuleConfiguration
	required     []string
	rosterSet    map[roster.PlayerID]struct{}
	availability roster.AvailabilityIndex

	inningIssues []ValidationIssue
	repeats      []ValidationIssue

	// per player: position -> times played, inning -> category
	positionCounts map[roster.PlayerID]map[string]int
	categories     map[roster.PlayerID]map[int]FieldCategory
}

func newValidation(players []roster.Player, availability []roster.Availability, rules RuleConfiguration) *validation {
	var gameID int64
	if len(availability) > 0 {
		gameID = availability[0].GameID
	}

	rosterSet := make(map[roster.PlayerID]struct{}, len(players))
	for _, p := range players {
		rosterSet[p.ID] = struct{}{}
	}

	return &validation{
		rules:          rules,
		required:       rules.sortedRequired(),
		rosterSet:      rosterSet,
		availability:   roster.IndexAvailability(gameID, availability),
		positionCounts: make(map[roster.PlayerID]map[string]int),
		categories:     make(map[roster.PlayerID]map[int]FieldCategory),
	}
}

func (v *validation) checkInning(inning int, assignments []Assignment) {
	var issues []ValidationIssue
	claimants := make(map[string][]roster.PlayerID)
	keptSlot := make(map[roster.PlayerID]string)

	for _, a := range sortedAssignments(assignments) {
		category, known := v.rules.CategoryOf(a.Position)
		if !IsSentinel(a.Position) {
			claimants[a.Position] = appendUnique(claimants[a.Position], a.PlayerID)
		}

		if kept, seen := keptSlot[a.PlayerID]; seen {
			issues = append(issues, ValidationIssue{
				Kind:          IssueDuplicatePosition,
				Inning:        inning,
				Position:      a.Position,
				OtherPosition: kept,
				PlayerIDs:     []roster.PlayerID{a.PlayerID},
			})
			continue
		}
		keptSlot[a.PlayerID] = a.Position

		if !known {
			issues = append(issues, ValidationIssue{
				Kind:     IssueUnknownPosition,
				Inning:   inning,
				Position: a.Position,
				PlayerID: a.PlayerID,
			})
		}
		if len(v.rosterSet) > 0 {
			if _, ok := v.rosterSet[a.PlayerID]; !ok {
				issues = append(issues, ValidationIssue{
					Kind:     IssueUnknownPlayer,
					Inning:   inning,
					Position: a.Position,
					PlayerID: a.PlayerID,
				})
			}
		}

		av := v.availability.For(a.PlayerID)
		if !av.Available && a.Position != PositionOut {
			issues = append(issues, ValidationIssue{
				Kind:     IssueUnavailablePlayerFielded,
				Inning:   inning,
				Position: a.Position,
				PlayerID: a.PlayerID,
			})
		}
		if v.rules.RequiresCatcher(a.Position) && !av.CanPlayCatcher {
			issues = append(issues, ValidationIssue{
				Kind:     IssueCatcherNotCapable,
				Inning:   inning,
				Position: a.Position,
				PlayerID: a.PlayerID,
			})
		}

		if known {
			v.recordCategory(a.PlayerID, inning, category)
		}
		if !IsSentinel(a.Position) {
			v.recordPosition(a.PlayerID, a.Position)
		}
	}

	for position, ids := range claimants {
		if len(ids) < 2 {
			continue
		}
		sorted := append([]roster.PlayerID(nil), ids...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		issues = append(issues, ValidationIssue{
			Kind:      IssueDuplicatePosition,
			Inning:    inning,
			Position:  position,
			PlayerIDs: sorted,
		})
	}

	for _, position := range v.required {
		if len(claimants[position]) == 0 {
			issues = append(issues, ValidationIssue{
				Kind:     IssueMissingRequiredPosition,
				Inning:   inning,
				Position: position,
			})
		}
	}

	sortInningIssues(issues)
	v.inningIssues = append(v.inningIssues, issues...)
}

func (v *validation) recordCategory(playerID roster.PlayerID, inning int, category FieldCategory) {
	byInning, ok := v.categories[playerID]
	if !ok {
		byInning = make(map[int]FieldCategory)
		v.categories[playerID] = byInning
	}
	byInning[inning] = category
}

func (v *validation) recordPosition(playerID roster.PlayerID, position string) {
	counts, ok := v.positionCounts[playerID]
	if !ok {
		counts = make(map[string]int)
		v.positionCounts[playerID] = counts
	}
	counts[position]++
}

func (v *validation) checkRepeatedPositions() {
	if v.rules.AllowRepeatedPosition {
		return
	}
	for playerID, counts := range v.positionCounts {
		for position, count := range counts {
			if count <= 1 {
				continue
			}
			v.repeats = append(v.repeats, ValidationIssue{
				Kind:     IssueSamePositionRepeated,
				Position: position,
				PlayerID: playerID,
				Count:    count,
			})
		}
	}
}

func (v *validation) checkConsecutiveCategories(innings int) {
	if !v.rules.NoConsecutiveSameCategory {
		return
	}
	for playerID, byInning := range v.categories {
		for inning := 1; inning < innings; inning++ {
			current, ok := byInning[inning]
			if !ok || !current.Fielded() {
				continue
			}
			if next, ok := byInning[inning+1]; ok && next == current {
				v.inningIssues = append(v.inningIssues, ValidationIssue{
					Kind:     IssueConsecutiveSameCategory,
					Inning:   inning,
					InningB:  inning + 1,
					PlayerID: playerID,
					Category: current,
				})
			}
		}
	}
}

// result orders issues by inning (a consecutive-category pair sorts at its
// first inning), then position, then player. Repeated positions carry no
// inning and come last.
func (v *validation) result() ValidationResult {
	sortInningIssues(v.inningIssues)
	sortRepeatIssues(v.repeats)

	result := ValidationResult{
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}
	for _, list := range [][]ValidationIssue{v.inningIssues, v.repeats} {
		for _, issue := range list {
			if issue.Severity() == SeverityWarning {
				result.Warnings = append(result.Warnings, issue)
				continue
			}
			result.Errors = append(result.Errors, issue)
		}
	}

	return result
}

func appendUnique(ids []roster.PlayerID, id roster.PlayerID) []roster.PlayerID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
