package roster

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateAvailability = errors.New("duplicate availability record")

// PlayerID is an opaque player identity. Jersey numbers are display data only.
type PlayerID int64

// Player is a season roster member.
type Player struct {
	ID             PlayerID
	SeasonID       int64
	JerseyNumber   string
	DisplayName    string
	CanPlayCatcher bool
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return fmt.Errorf("player display name is required")
	}

	return nil
}

// Availability holds per-game flags for one player.
type Availability struct {
	GameID         int64
	PlayerID       PlayerID
	Available      bool
	CanPlayCatcher bool
}

// DefaultAvailability is used when no record exists for a (game, player) pair.
func DefaultAvailability(gameID int64, playerID PlayerID) Availability {
	return Availability{
		GameID:    gameID,
		PlayerID:  playerID,
		Available: true,
	}
}

// AvailabilityIndex looks up availability by player for a single game.
type AvailabilityIndex struct {
	gameID  int64
	records map[PlayerID]Availability
}

// NewAvailabilityIndex builds a strict index: a second record for the same
// player is rejected.
func NewAvailabilityIndex(gameID int64, records []Availability) (AvailabilityIndex, error) {
	idx := AvailabilityIndex{
		gameID:  gameID,
		records: make(map[PlayerID]Availability, len(records)),
	}
	for _, r := range records {
		if _, exists := idx.records[r.PlayerID]; exists {
			return AvailabilityIndex{}, fmt.Errorf("%w: game=%d player=%d", ErrDuplicateAvailability, gameID, r.PlayerID)
		}
		idx.records[r.PlayerID] = r
	}

	return idx, nil
}

// IndexAvailability builds a lenient index that keeps the first record per
// player. Records for other games are ignored.
func IndexAvailability(gameID int64, records []Availability) AvailabilityIndex {
	idx := AvailabilityIndex{
		gameID:  gameID,
		records: make(map[PlayerID]Availability, len(records)),
	}
	for _, r := range records {
		if r.GameID != gameID {
			continue
		}
		if _, exists := idx.records[r.PlayerID]; exists {
			continue
		}
		idx.records[r.PlayerID] = r
	}

	return idx
}

func (idx AvailabilityIndex) For(playerID PlayerID) Availability {
	if r, ok := idx.records[playerID]; ok {
		return r
	}
	return DefaultAvailability(idx.gameID, playerID)
}

// IDs returns the player IDs of a roster in input order.
func IDs(players []Player) []PlayerID {
	out := make([]PlayerID, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}
