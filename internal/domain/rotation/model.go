package rotation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
)

var ErrMalformedRecord = errors.New("malformed rotation record")

// FieldCategory classifies every position a player can hold in an inning.
type FieldCategory string

const (
	CategoryInfield  FieldCategory = "infield"
	CategoryOutfield FieldCategory = "outfield"
	CategoryBench    FieldCategory = "bench"
	CategoryOut      FieldCategory = "out"
)

var AllCategories = map[FieldCategory]struct{}{
	CategoryInfield:  {},
	CategoryOutfield: {},
	CategoryBench:    {},
	CategoryOut:      {},
}

func ParseFieldCategory(v string) (FieldCategory, error) {
	c := FieldCategory(strings.ToLower(strings.TrimSpace(v)))
	if _, ok := AllCategories[c]; !ok {
		return "", fmt.Errorf("unknown field category %q", v)
	}
	return c, nil
}

// Fielded reports whether the category is an on-field category.
func (c FieldCategory) Fielded() bool {
	return c == CategoryInfield || c == CategoryOutfield
}

// Sentinel slot names. They are not positions and never fill one.
const (
	PositionBench = "Bench"
	PositionOut   = "OUT"
)

// NormalizePosition trims the name and canonicalizes the sentinels.
func NormalizePosition(position string) string {
	position = strings.TrimSpace(position)
	switch {
	case strings.EqualFold(position, PositionBench):
		return PositionBench
	case strings.EqualFold(position, PositionOut):
		return PositionOut
	default:
		return position
	}
}

func IsSentinel(position string) bool {
	position = NormalizePosition(position)
	return position == PositionBench || position == PositionOut
}

// Assignment places one player in one slot for an inning.
type Assignment struct {
	Position string          `json:"position"`
	PlayerID roster.PlayerID `json:"player_id"`
}

// RotationPlan holds the per-inning assignments of one game. Innings are
// 1-based. Each inning is a list so duplicate claims stay representable.
type RotationPlan struct {
	Innings map[int][]Assignment `json:"innings"`
}

func NewRotationPlan() RotationPlan {
	return RotationPlan{Innings: make(map[int][]Assignment)}
}

func (p RotationPlan) Inning(inning int) []Assignment {
	return p.Innings[inning]
}

// InningCount returns the highest inning number present.
func (p RotationPlan) InningCount() int {
	maxInning := 0
	for inning := range p.Innings {
		if inning > maxInning {
			maxInning = inning
		}
	}
	return maxInning
}

func (p RotationPlan) Clone() RotationPlan {
	out := RotationPlan{Innings: make(map[int][]Assignment, len(p.Innings))}
	for inning, items := range p.Innings {
		out.Innings[inning] = append([]Assignment(nil), items...)
	}
	return out
}

// Assign moves a player into a slot, dropping any slot they already held in
// that inning.
func (p *RotationPlan) Assign(inning int, position string, playerID roster.PlayerID) {
	if p.Innings == nil {
		p.Innings = make(map[int][]Assignment)
	}
	current := p.Innings[inning]
	kept := make([]Assignment, 0, len(current)+1)
	for _, a := range current {
		if a.PlayerID == playerID {
			continue
		}
		kept = append(kept, a)
	}
	kept = append(kept, Assignment{Position: NormalizePosition(position), PlayerID: playerID})
	p.Innings[inning] = kept
}

// PositionOf returns the first slot the player holds in an inning.
func (p RotationPlan) PositionOf(inning int, playerID roster.PlayerID) (string, bool) {
	for _, a := range p.Innings[inning] {
		if a.PlayerID == playerID {
			return NormalizePosition(a.Position), true
		}
	}
	return "", false
}

// Resolved returns one slot per player for an inning: positions normalized,
// ordered by position then player, a player's lexically first slot kept.
func (p RotationPlan) Resolved(inning int) []Assignment {
	items := sortedAssignments(p.Innings[inning])
	seen := make(map[roster.PlayerID]struct{}, len(items))
	out := items[:0]
	for _, a := range items {
		if _, dup := seen[a.PlayerID]; dup {
			continue
		}
		seen[a.PlayerID] = struct{}{}
		out = append(out, a)
	}
	return out
}

// sortedAssignments orders an inning by position name, then player id.
func sortedAssignments(items []Assignment) []Assignment {
	out := make([]Assignment, 0, len(items))
	for _, a := range items {
		out = append(out, Assignment{Position: NormalizePosition(a.Position), PlayerID: a.PlayerID})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// BattingOrder is the batting sequence of one game. Slot = index + 1.
type BattingOrder struct {
	PlayerIDs []roster.PlayerID `json:"player_ids"`
}

// Slot returns the 1-based batting slot of a player.
func (o BattingOrder) Slot(playerID roster.PlayerID) (int, bool) {
	for i, id := range o.PlayerIDs {
		if id == playerID {
			return i + 1, true
		}
	}
	return 0, false
}
