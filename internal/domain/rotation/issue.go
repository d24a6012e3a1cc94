package rotation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
)

// IssueKind tags a ValidationIssue. The set is closed.
type IssueKind string

const (
	IssueMissingRequiredPosition  IssueKind = "missing_required_position"
	IssueDuplicatePosition        IssueKind = "duplicate_position"
	IssueSamePositionRepeated     IssueKind = "same_position_repeated"
	IssueConsecutiveSameCategory  IssueKind = "consecutive_same_category"
	IssueCatcherNotCapable        IssueKind = "catcher_not_capable"
	IssueUnavailablePlayerFielded IssueKind = "unavailable_player_fielded"
	IssueUnknownPosition          IssueKind = "unknown_position"
	IssueUnknownPlayer            IssueKind = "unknown_player"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

func (k IssueKind) Severity() Severity {
	switch k {
	case IssueCatcherNotCapable, IssueUnavailablePlayerFielded:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// kindRank breaks ties between issues sharing inning, position and player.
var kindRank = map[IssueKind]int{
	IssueUnknownPosition:          0,
	IssueUnknownPlayer:            1,
	IssueMissingRequiredPosition:  2,
	IssueDuplicatePosition:        3,
	IssueUnavailablePlayerFielded: 4,
	IssueCatcherNotCapable:        5,
	IssueSamePositionRepeated:     6,
	IssueConsecutiveSameCategory:  7,
}

// ValidationIssue carries the structured fields of one finding. Which fields
// are set depends on Kind.
type ValidationIssue struct {
	Kind          IssueKind         `json:"kind"`
	Inning        int               `json:"inning,omitempty"`
	InningB       int               `json:"inning_b,omitempty"`
	Position      string            `json:"position,omitempty"`
	OtherPosition string            `json:"other_position,omitempty"`
	PlayerID      roster.PlayerID   `json:"player_id"`
	PlayerIDs     []roster.PlayerID `json:"player_ids,omitempty"`
	Category      FieldCategory     `json:"category,omitempty"`
	Count         int               `json:"count,omitempty"`
}

func (i ValidationIssue) Severity() Severity {
	return i.Kind.Severity()
}

func (i ValidationIssue) Message() string {
	switch i.Kind {
	case IssueMissingRequiredPosition:
		return fmt.Sprintf("inning %d: %s is not filled", i.Inning, i.Position)
	case IssueDuplicatePosition:
		if i.OtherPosition != "" && len(i.PlayerIDs) == 1 {
			return fmt.Sprintf("inning %d: player %d is at %s and %s", i.Inning, i.PlayerIDs[0], i.OtherPosition, i.Position)
		}
		return fmt.Sprintf("inning %d: %s is assigned to players %s", i.Inning, i.Position, joinIDs(i.PlayerIDs))
	case IssueSamePositionRepeated:
		return fmt.Sprintf("player %d plays %s %d times", i.PlayerID, i.Position, i.Count)
	case IssueConsecutiveSameCategory:
		return fmt.Sprintf("player %d plays %s in innings %d and %d", i.PlayerID, i.Category, i.Inning, i.InningB)
	case IssueCatcherNotCapable:
		return fmt.Sprintf("inning %d: player %d is not cleared to catch at %s", i.Inning, i.PlayerID, i.Position)
	case IssueUnavailablePlayerFielded:
		return fmt.Sprintf("inning %d: unavailable player %d is assigned %s", i.Inning, i.PlayerID, i.Position)
	case IssueUnknownPosition:
		return fmt.Sprintf("inning %d: position %q has no category mapping", i.Inning, i.Position)
	case IssueUnknownPlayer:
		return fmt.Sprintf("inning %d: player %d at %s is not on the roster", i.Inning, i.PlayerID, i.Position)
	default:
		return string(i.Kind)
	}
}

func joinIDs(ids []roster.PlayerID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ", ")
}

// ValidationResult splits issues by severity, each list in emission order.
type ValidationResult struct {
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r ValidationResult) Clean() bool {
	return !r.HasErrors() && !r.HasWarnings()
}

// CountByKind tallies errors and warnings together.
func (r ValidationResult) CountByKind() map[IssueKind]int {
	out := make(map[IssueKind]int)
	for _, i := range r.Errors {
		out[i.Kind]++
	}
	for _, i := range r.Warnings {
		out[i.Kind]++
	}
	return out
}

func sortInningIssues(items []ValidationIssue) {
	sort.SliceStable(items, func(a, b int) bool {
		x, y := items[a], items[b]
		if x.Inning != y.Inning {
			return x.Inning < y.Inning
		}
		if x.Position != y.Position {
			return x.Position < y.Position
		}
		if firstPlayer(x) != firstPlayer(y) {
			return firstPlayer(x) < firstPlayer(y)
		}
		return kindRank[x.Kind] < kindRank[y.Kind]
	})
}

func sortRepeatIssues(items []ValidationIssue) {
	sort.SliceStable(items, func(a, b int) bool {
		x, y := items[a], items[b]
		if x.Position != y.Position {
			return x.Position < y.Position
		}
		return x.PlayerID < y.PlayerID
	})
}

func firstPlayer(i ValidationIssue) roster.PlayerID {
	if i.PlayerID != 0 {
		return i.PlayerID
	}
	if len(i.PlayerIDs) > 0 {
		return i.PlayerIDs[0]
	}
	return 0
}
