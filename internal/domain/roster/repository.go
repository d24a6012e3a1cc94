package roster

import "context"

// Repository exposes season-scoped roster reads.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Player, error)
	ListAvailabilityByGame(ctx context.Context, gameID int64) ([]Availability, error)
}
