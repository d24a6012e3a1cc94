package usecase

import (
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
)

const testSeasonID int64 = 1

// testRules requires a pitcher and a catcher and lets players repeat a
// position, so single-issue plans are easy to write.
func testRules() rotation.RuleConfiguration {
	return rotation.RuleConfiguration{
		RequiredPositions: []string{"P", "C"},
		PositionCategory: map[string]rotation.FieldCategory{
			"P":  rotation.CategoryInfield,
			"C":  rotation.CategoryOutfield,
			"LF": rotation.CategoryOutfield,
		},
		CatcherPositions:      []string{"C"},
		AllowRepeatedPosition: true,
	}
}

func inning(pairs ...any) []rotation.Assignment {
	out := make([]rotation.Assignment, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rotation.Assignment{
			Position: pairs[i].(string),
			PlayerID: roster.PlayerID(pairs[i+1].(int)),
		})
	}
	return out
}

// testDataset is one season of four two-inning games. Player 2 is the only
// catcher. Game 11 is clean, game 12 has a catcher warning, game 13 has no
// plan and game 14 is missing required positions.
func testDataset() memory.Dataset {
	games := []game.Game{
		{ID: 11, SeasonID: testSeasonID, Number: 1, Innings: 2},
		{ID: 12, SeasonID: testSeasonID, Number: 2, Innings: 2},
		{ID: 13, SeasonID: testSeasonID, Number: 3, Innings: 2},
		{ID: 14, SeasonID: testSeasonID, Number: 4, Innings: 2},
	}

	var availability []roster.Availability
	for _, g := range games {
		availability = append(availability, roster.Availability{GameID: g.ID, PlayerID: 2, Available: true, CanPlayCatcher: true})
	}

	return memory.Dataset{
		Players: []roster.Player{
			{ID: 1, SeasonID: testSeasonID, DisplayName: "Ava"},
			{ID: 2, SeasonID: testSeasonID, DisplayName: "Ben", CanPlayCatcher: true},
			{ID: 3, SeasonID: testSeasonID, DisplayName: "Cleo"},
		},
		Availability: availability,
		Games:        games,
		Plans: map[int64]rotation.RotationPlan{
			11: {Innings: map[int][]rotation.Assignment{
				1: inning("P", 1, "C", 2, "Bench", 3),
				2: inning("P", 3, "C", 2, "Bench", 1),
			}},
			12: {Innings: map[int][]rotation.Assignment{
				1: inning("P", 1, "C", 3, "Bench", 2),
				2: inning("P", 1, "C", 2, "LF", 3),
			}},
			14: {Innings: map[int][]rotation.Assignment{
				1: inning("P", 1, "Bench", 2, "Bench", 3),
				2: inning("Bench", 1, "Bench", 2, "Bench", 3),
			}},
		},
		Orders: map[int64]rotation.BattingOrder{
			11: {PlayerIDs: []roster.PlayerID{1, 2, 3}},
			12: {PlayerIDs: []roster.PlayerID{3, 1, 2}},
		},
		Rules: map[int64]rotation.RuleConfiguration{
			testSeasonID: testRules(),
		},
	}
}

func newTestRepositories(data memory.Dataset) memory.Repositories {
	return memory.NewRepositories(data)
}

func newTestRotationService(repos memory.Repositories) *RotationService {
	return NewRotationService(repos.Game, repos.Roster, repos.Rotation, rotation.DefaultRules(), logging.NewNop())
}
