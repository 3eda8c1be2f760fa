package pick

import "context"

// Repository describes pick persistence needs from use cases.
type Repository interface {
	ListByWeek(ctx context.Context, season, week int) ([]Pick, error)
	Get(ctx context.Context, season, week int, player string, category Category) (Pick, bool, error)
	// FindHolder returns the pick of another player holding value, if any.
	FindHolder(ctx context.Context, season, week int, category Category, value, excludePlayer string) (Pick, bool, error)
	Upsert(ctx context.Context, item Pick) (Pick, error)
}
