package participant

import "context"

// Repository describes participant persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Participant, error)
	GetByName(ctx context.Context, name string) (Participant, bool, error)
	Create(ctx context.Context, item Participant) error
}
