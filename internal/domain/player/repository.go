package player

import "context"

// Repository describes starter persistence needs from use cases.
type Repository interface {
	ListActiveByTeams(ctx context.Context, teams []string) ([]Player, error)
}
