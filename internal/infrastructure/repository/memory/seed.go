package memory

import (
	"time"

	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

const (
	SeasonIDDemo = 2025

	demoInnings = 4
)

// seedSlots is the slot cycle used to build the demo plans.
var seedSlots = []string{
	rotation.PositionPitcher,
	rotation.PositionCatcher,
	rotation.PositionFirstBase,
	rotation.PositionSecondBase,
	rotation.PositionThirdBase,
	rotation.PositionShortstop,
	rotation.PositionLeftField,
	rotation.PositionRightField,
	rotation.PositionBench,
	rotation.PositionBench,
}

func SeedPlayers() []roster.Player {
	return []roster.Player{
		{ID: 1, SeasonID: SeasonIDDemo, JerseyNumber: "2", DisplayName: "Ava"},
		{ID: 2, SeasonID: SeasonIDDemo, JerseyNumber: "4", DisplayName: "Ben", CanPlayCatcher: true},
		{ID: 3, SeasonID: SeasonIDDemo, JerseyNumber: "7", DisplayName: "Cleo"},
		{ID: 4, SeasonID: SeasonIDDemo, JerseyNumber: "9", DisplayName: "Dev"},
		{ID: 5, SeasonID: SeasonIDDemo, JerseyNumber: "11", DisplayName: "Eli", CanPlayCatcher: true},
		{ID: 6, SeasonID: SeasonIDDemo, JerseyNumber: "13", DisplayName: "Fay"},
		{ID: 7, SeasonID: SeasonIDDemo, JerseyNumber: "17", DisplayName: "Gus"},
		{ID: 8, SeasonID: SeasonIDDemo, JerseyNumber: "21", DisplayName: "Hana"},
		{ID: 9, SeasonID: SeasonIDDemo, JerseyNumber: "24", DisplayName: "Ivo"},
		{ID: 10, SeasonID: SeasonIDDemo, JerseyNumber: "32", DisplayName: "Juno"},
	}
}

func SeedGames() []game.Game {
	start := time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC)
	return []game.Game{
		{ID: 101, SeasonID: SeasonIDDemo, Number: 1, Opponent: "Hawks", Innings: demoInnings, PlayedAt: start},
		{ID: 102, SeasonID: SeasonIDDemo, Number: 2, Opponent: "Otters", Innings: demoInnings, PlayedAt: start.AddDate(0, 0, 7)},
		{ID: 103, SeasonID: SeasonIDDemo, Number: 3, Opponent: "Comets", Innings: demoInnings, PlayedAt: start.AddDate(0, 0, 14)},
	}
}

// SeedAvailability records per-game catcher capability for the two catchers
// and one absence in game two.
func SeedAvailability() []roster.Availability {
	var out []roster.Availability
	for _, g := range SeedGames() {
		out = append(out,
			roster.Availability{GameID: g.ID, PlayerID: 2, Available: true, CanPlayCatcher: true},
			roster.Availability{GameID: g.ID, PlayerID: 5, Available: true, CanPlayCatcher: true},
		)
	}
	out = append(out, roster.Availability{GameID: 102, PlayerID: 10, Available: false})
	return out
}

// SeedDataset is a small season with applied plans and batting orders for
// the first two games. Game three has nothing applied yet.
func SeedDataset() Dataset {
	players := SeedPlayers()
	ids := roster.IDs(players)

	plans := map[int64]rotation.RotationPlan{
		101: shiftedPlan(ids, demoInnings, 0, nil),
		102: shiftedPlan(ids, demoInnings, 3, map[roster.PlayerID]struct{}{10: {}}),
	}

	orders := map[int64]rotation.BattingOrder{
		101: {PlayerIDs: append([]roster.PlayerID(nil), ids...)},
		102: {PlayerIDs: reversed(ids)},
	}

	return Dataset{
		Players:      players,
		Availability: SeedAvailability(),
		Games:        SeedGames(),
		Plans:        plans,
		Orders:       orders,
		Rules: map[int64]rotation.RuleConfiguration{
			SeasonIDDemo: rotation.DefaultRules(),
		},
	}
}

// shiftedPlan walks every player through seedSlots, moving them forward one
// slot per inning. Absent players are placed OUT.
func shiftedPlan(ids []roster.PlayerID, innings, offset int, absent map[roster.PlayerID]struct{}) rotation.RotationPlan {
	plan := rotation.NewRotationPlan()
	for inning := 1; inning <= innings; inning++ {
		for i, id := range ids {
			position := seedSlots[(i+offset+inning-1)%len(seedSlots)]
			if _, out := absent[id]; out {
				position = rotation.PositionOut
			}
			plan.Innings[inning] = append(plan.Innings[inning], rotation.Assignment{Position: position, PlayerID: id})
		}
	}
	return plan
}

func reversed(ids []roster.PlayerID) []roster.PlayerID {
	out := make([]roster.PlayerID, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, ids[i])
	}
	return out
}
