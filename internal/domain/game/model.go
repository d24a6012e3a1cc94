package game

import (
	"fmt"
	"time"
)

// Game is one scheduled game of a season.
type Game struct {
	ID       int64
	SeasonID int64
	Number   int
	Opponent string
	Innings  int
	PlayedAt time.Time
}

func (g Game) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("game id must be greater than zero")
	}
	if g.SeasonID <= 0 {
		return fmt.Errorf("game season id must be greater than zero")
	}
	if g.Innings <= 0 {
		return fmt.Errorf("game innings must be greater than zero")
	}

	return nil
}
