package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/magentamen/picks/internal/platform/resilience"
)

// OddsProvider is the upstream odds and scores feed. Games it returns carry
// no season or week; the calendar assigns them.
type OddsProvider interface {
	FetchOdds(ctx context.Context) ([]game.Game, error)
	FetchScores(ctx context.Context, from, to time.Time) ([]gameresult.Score, error)
}

type GameService struct {
	games    game.Repository
	odds     OddsProvider
	calendar season.Calendar
	logger   *logging.Logger
	now      func() time.Time
	flight   resilience.SingleFlight[[]game.Game]
}

type RefreshGamesResult struct {
	Week         int
	UpdatedCount int
}

// NewGameService builds the game service. odds may be nil when no provider
// key is configured; reads then serve stored games only.
func NewGameService(games game.Repository, odds OddsProvider, calendar season.Calendar, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameService{
		games:    games,
		odds:     odds,
		calendar: calendar,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *GameService) Calendar() season.Calendar {
	return s.calendar
}

// ListByWeek returns the stored games of week. An empty week triggers one
// provider fetch for the whole season; provider failures degrade to an
// empty list.
func (s *GameService) ListByWeek(ctx context.Context, week int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListByWeek")
	defer span.End()

	if !s.calendar.Contains(week) {
		return []game.Game{}, nil
	}

	items, err := s.games.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return nil, fmt.Errorf("list games by week: %w", err)
	}
	if len(items) > 0 || s.odds == nil {
		return items, nil
	}

	fetched, err := s.fetchSeason(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch odds for empty week failed", "week", week, "error", err)
		return []game.Game{}, nil
	}
	if err := s.games.Upsert(ctx, fetched); err != nil {
		s.logger.WarnContext(ctx, "store fetched games failed", "week", week, "error", err)
	}

	return filterWeek(fetched, week), nil
}

// RefreshWeek refetches odds and writes the games of week. Existing games
// only take new quotes when the provider returned any.
func (s *GameService) RefreshWeek(ctx context.Context, week int) (RefreshGamesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.RefreshWeek")
	defer span.End()

	if !s.calendar.Contains(week) {
		return RefreshGamesResult{}, userError(ErrInvalidInput, "Week parameter required")
	}
	if s.odds == nil {
		return RefreshGamesResult{}, errOddsDisabled
	}

	fetched, err := s.fetchSeason(ctx)
	if err != nil {
		return RefreshGamesResult{}, &UserError{
			Kind:    ErrDependencyUnavailable,
			Message: "API request failed: " + err.Error(),
		}
	}

	stored, err := s.games.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return RefreshGamesResult{}, fmt.Errorf("list games by week: %w", err)
	}
	existing := make(map[string]game.Game, len(stored))
	for _, item := range stored {
		existing[item.Key()] = item
	}

	now := s.now().UTC()
	changed := make([]game.Game, 0, len(fetched))
	for _, item := range filterWeek(fetched, week) {
		current, ok := existing[item.Key()]
		if !ok {
			changed = append(changed, item)
			continue
		}
		if len(item.Bookmakers) == 0 {
			continue
		}
		current.Bookmakers = item.Bookmakers
		current.UpdatedAt = now
		changed = append(changed, current)
	}

	if err := s.games.Upsert(ctx, changed); err != nil {
		return RefreshGamesResult{}, fmt.Errorf("upsert refreshed games: %w", err)
	}

	s.logger.InfoContext(ctx, "games refreshed", "week", week, "updated", len(changed), "fetched", len(fetched))
	return RefreshGamesResult{Week: week, UpdatedCount: len(changed)}, nil
}

func (s *GameService) fetchSeason(ctx context.Context) ([]game.Game, error) {
	fetched, err, _ := s.flight.Do("odds", func() ([]game.Game, error) {
		items, err := s.odds.FetchOdds(ctx)
		if err != nil {
			return nil, err
		}

		now := s.now().UTC()
		out := make([]game.Game, 0, len(items))
		for _, item := range items {
			item.Season = s.calendar.Season
			item.Week = s.calendar.WeekAt(item.CommenceTime)
			if item.UpdatedAt.IsZero() {
				item.UpdatedAt = now
			}
			if item.Bookmakers == nil {
				item.Bookmakers = game.Bookmakers{}
			}
			if err := item.Validate(); err != nil {
				s.logger.WarnContext(ctx, "skip invalid provider game", "matchup", item.Matchup(), "error", err)
				continue
			}
			out = append(out, item)
		}
		return out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}
	return fetched, nil
}

func filterWeek(items []game.Game, week int) []game.Game {
	out := make([]game.Game, 0, len(items))
	for _, item := range items {
		if item.Week == week {
			out = append(out, item)
		}
	}
	return out
}
