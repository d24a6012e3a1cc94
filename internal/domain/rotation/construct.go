package rotation

import (
	"sort"

	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
)

// NewBenchPlan seats every roster player on the Bench for each inning.
// Players marked unavailable are placed OUT instead.
func NewBenchPlan(innings int, players []roster.Player, availability []roster.Availability) RotationPlan {
	plan := NewRotationPlan()
	idx := indexFor(availability)
	ids := sortedIDs(players)

	for inning := 1; inning <= innings; inning++ {
		items := make([]Assignment, 0, len(ids))
		for _, id := range ids {
			items = append(items, Assignment{Position: restingSlot(idx, id), PlayerID: id})
		}
		plan.Innings[inning] = items
	}
	return plan
}

// CopyPlan derives a plan from a prior game's plan. Assignments of players no
// longer on the roster are dropped, unavailable players go OUT, and players
// the prior plan never placed sit on the Bench.
func CopyPlan(prior RotationPlan, innings int, players []roster.Player, availability []roster.Availability) RotationPlan {
	plan := NewRotationPlan()
	idx := indexFor(availability)
	ids := sortedIDs(players)
	onRoster := make(map[roster.PlayerID]struct{}, len(ids))
	for _, id := range ids {
		onRoster[id] = struct{}{}
	}

	for inning := 1; inning <= innings; inning++ {
		placed := make(map[roster.PlayerID]struct{}, len(ids))
		items := make([]Assignment, 0, len(ids))
		for _, a := range prior.Innings[inning] {
			if _, ok := onRoster[a.PlayerID]; !ok {
				continue
			}
			if _, dup := placed[a.PlayerID]; dup {
				continue
			}
			placed[a.PlayerID] = struct{}{}

			position := NormalizePosition(a.Position)
			if !idx.For(a.PlayerID).Available {
				position = PositionOut
			}
			items = append(items, Assignment{Position: position, PlayerID: a.PlayerID})
		}
		for _, id := range ids {
			if _, ok := placed[id]; ok {
				continue
			}
			items = append(items, Assignment{Position: restingSlot(idx, id), PlayerID: id})
		}
		plan.Innings[inning] = items
	}
	return plan
}

func restingSlot(idx roster.AvailabilityIndex, id roster.PlayerID) string {
	if idx.For(id).Available {
		return PositionBench
	}
	return PositionOut
}

func indexFor(availability []roster.Availability) roster.AvailabilityIndex {
	var gameID int64
	if len(availability) > 0 {
		gameID = availability[0].GameID
	}
	return roster.IndexAvailability(gameID, availability)
}

func sortedIDs(players []roster.Player) []roster.PlayerID {
	ids := roster.IDs(players)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
