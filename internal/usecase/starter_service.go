package usecase

import (
	"context"
	"fmt"

	"github.com/magentamen/picks/internal/domain/player"
)

// StarterService serves the starter directory used for touchdown scorer options.
type StarterService struct {
	players player.Repository
}

func NewStarterService(players player.Repository) *StarterService {
	return &StarterService{players: players}
}

// ListActiveByTeams returns active starters for the given abbreviations.
// Team codes are trimmed and upper-cased; an empty set yields no starters.
func (s *StarterService) ListActiveByTeams(ctx context.Context, teams []string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StarterService.ListActiveByTeams")
	defer span.End()

	teams = player.NormalizeTeams(teams)
	if len(teams) == 0 {
		return []player.Player{}, nil
	}

	items, err := s.players.ListActiveByTeams(ctx, teams)
	if err != nil {
		return nil, fmt.Errorf("list starters by teams: %w", err)
	}
	return items, nil
}
