package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	ListByWeek(ctx context.Context, season, week int) ([]Game, error)
	ListBySeason(ctx context.Context, season int) ([]Game, error)
	Upsert(ctx context.Context, games []Game) error
}
