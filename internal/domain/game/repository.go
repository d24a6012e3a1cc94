package game

import "context"

// Repository describes game reads needed by the rotation use cases.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Game, error)
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
}
