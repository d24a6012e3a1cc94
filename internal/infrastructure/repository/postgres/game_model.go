package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID         int64        `db:"id"`
	SeasonID   int64        `db:"season_id"`
	GameNumber int          `db:"game_number"`
	Opponent   string       `db:"opponent"`
	Innings    int          `db:"innings"`
	PlayedAt   sql.NullTime `db:"played_at"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
	DeletedAt  *time.Time   `db:"deleted_at"`
}
