package memory

import (
	"github.com/riskibarqy/rotation-engine/internal/domain/game"
	"github.com/riskibarqy/rotation-engine/internal/domain/roster"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

// Dataset is everything the in-memory repositories serve. Plans and batting
// orders are keyed by game ID, rules by season ID.
type Dataset struct {
	Players      []roster.Player
	Availability []roster.Availability
	Games        []game.Game
	Plans        map[int64]rotation.RotationPlan
	Orders       map[int64]rotation.BattingOrder
	Rules        map[int64]rotation.RuleConfiguration
}

// Repositories bundles the in-memory implementations of the domain ports.
type Repositories struct {
	Roster   *RosterRepository
	Game     *GameRepository
	Rotation *RotationRepository
}

func NewRepositories(data Dataset) Repositories {
	return Repositories{
		Roster:   NewRosterRepository(data.Players, data.Availability),
		Game:     NewGameRepository(data.Games),
		Rotation: NewRotationRepository(data.Plans, data.Orders, data.Rules),
	}
}
