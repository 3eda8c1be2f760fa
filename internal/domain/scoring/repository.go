package scoring

import "context"

type Repository interface {
	ListByWeek(ctx context.Context, season, week int) ([]Result, error)
	ListBySeason(ctx context.Context, season int) ([]Result, error)
	Upsert(ctx context.Context, item Result) error
}
