package postgres

import "time"

type playerTableModel struct {
	ID             int64      `db:"id"`
	SeasonID       int64      `db:"season_id"`
	JerseyNumber   string     `db:"jersey_number"`
	DisplayName    string     `db:"display_name"`
	CanPlayCatcher bool       `db:"can_play_catcher"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type availabilityTableModel struct {
	GameID         int64 `db:"game_id"`
	PlayerID       int64 `db:"player_id"`
	IsAvailable    bool  `db:"is_available"`
	CanPlayCatcher bool  `db:"can_play_catcher"`
}
