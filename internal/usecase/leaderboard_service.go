package usecase

import (
	"context"
	"fmt"

	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/domain/season"
)

type LeaderboardService struct {
	results  scoring.Repository
	calendar season.Calendar
}

func NewLeaderboardService(results scoring.Repository, calendar season.Calendar) *LeaderboardService {
	return &LeaderboardService{results: results, calendar: calendar}
}

// Standings ranks every player with at least one settled pick this season.
func (s *LeaderboardService) Standings(ctx context.Context) ([]scoring.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Standings")
	defer span.End()

	items, err := s.results.ListBySeason(ctx, s.calendar.Season)
	if err != nil {
		return nil, fmt.Errorf("list results by season: %w", err)
	}
	return scoring.BuildLeaderboard(items), nil
}
