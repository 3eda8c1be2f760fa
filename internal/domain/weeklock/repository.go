package weeklock

import "context"

// Repository describes week lock persistence needs from use cases.
type Repository interface {
	Get(ctx context.Context, season, week int) (Lock, bool, error)
	Create(ctx context.Context, lock Lock) error
	Delete(ctx context.Context, season, week int) (bool, error)
}
