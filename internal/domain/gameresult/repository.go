package gameresult

import "context"

// Repository describes game result persistence needs from use cases.
type Repository interface {
	ListByWeek(ctx context.Context, season, week int) ([]GameResult, error)
	Upsert(ctx context.Context, items []GameResult) error
}
