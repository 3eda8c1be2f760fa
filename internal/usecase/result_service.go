package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/participant"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/resolution"
	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

const defaultRecalcWorkers = 4

// SnapshotStore holds the current result snapshot per week. Store replaces
// the week's snapshot as a whole.
type SnapshotStore interface {
	Load(ctx context.Context, season, week int) (resolution.Snapshot, bool, error)
	Store(ctx context.Context, snap resolution.Snapshot) error
}

type ResultService struct {
	games        game.Repository
	gameResults  gameresult.Repository
	picks        pick.Repository
	participants participant.Repository
	results      scoring.Repository
	snapshots    SnapshotStore
	odds         OddsProvider
	calendar     season.Calendar
	bookmakerKey string
	workers      int
	logger       *logging.Logger
	now          func() time.Time
}

type ResultServiceConfig struct {
	Calendar     season.Calendar
	BookmakerKey string
	Workers      int
}

type RefreshResultsSummary struct {
	Week         int
	GamesUpdated int
	PicksUpdated int
}

// PickOutcome pairs a player's pick with its stored verdict.
type PickOutcome struct {
	Pick    string
	Outcome scoring.Outcome
}

// WeekResults is player -> category -> pick and outcome.
type WeekResults map[string]map[pick.Category]PickOutcome

type ManualResultInput struct {
	Week     int
	Player   string
	Category string
	Outcome  string
}

func NewResultService(
	games game.Repository,
	gameResults gameresult.Repository,
	picks pick.Repository,
	participants participant.Repository,
	results scoring.Repository,
	snapshots SnapshotStore,
	odds OddsProvider,
	cfg ResultServiceConfig,
	logger *logging.Logger,
) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.BookmakerKey == "" {
		cfg.BookmakerKey = resolution.DefaultBookmaker
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultRecalcWorkers
	}
	return &ResultService{
		games:        games,
		gameResults:  gameResults,
		picks:        picks,
		participants: participants,
		results:      results,
		snapshots:    snapshots,
		odds:         odds,
		calendar:     cfg.Calendar,
		bookmakerKey: cfg.BookmakerKey,
		workers:      cfg.Workers,
		logger:       logger,
		now:          time.Now,
	}
}

// GameResults returns the stored results of week.
func (s *ResultService) GameResults(ctx context.Context, week int) ([]gameresult.GameResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.GameResults")
	defer span.End()

	if week <= 0 {
		return nil, errMissingWeek
	}
	items, err := s.gameResults.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return nil, fmt.Errorf("list game results: %w", err)
	}
	return items, nil
}

// Snapshot returns the current snapshot of week, building it from stored
// results on first use.
func (s *ResultService) Snapshot(ctx context.Context, week int) (resolution.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Snapshot")
	defer span.End()

	snap, ok, err := s.snapshots.Load(ctx, s.calendar.Season, week)
	if err != nil {
		s.logger.WarnContext(ctx, "load snapshot failed, rebuilding", "week", week, "error", err)
	}
	if ok {
		return snap, nil
	}
	return s.rebuildSnapshot(ctx, week)
}

func (s *ResultService) rebuildSnapshot(ctx context.Context, week int) (resolution.Snapshot, error) {
	items, err := s.gameResults.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return resolution.Snapshot{}, fmt.Errorf("list game results: %w", err)
	}
	snap := resolution.NewSnapshot(s.calendar.Season, week, items, s.now().UTC())
	if err := s.snapshots.Store(ctx, snap); err != nil {
		return resolution.Snapshot{}, fmt.Errorf("store snapshot: %w", err)
	}
	return snap, nil
}

// RefreshGameResults pulls the week's scores, settles completed games
// against the stored lines, publishes a new snapshot and recalculates pick
// outcomes.
func (s *ResultService) RefreshGameResults(ctx context.Context, week int) (RefreshResultsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.RefreshGameResults")
	defer span.End()

	if !s.calendar.Contains(week) {
		return RefreshResultsSummary{}, errMissingWeek
	}
	if s.odds == nil {
		return RefreshResultsSummary{}, ErrNoGameResults
	}

	from, to := s.calendar.Window(week)
	scores, err := s.odds.FetchScores(ctx, from, to)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch scores failed", "week", week, "error", err)
		return RefreshResultsSummary{}, ErrNoGameResults
	}

	games, err := s.games.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return RefreshResultsSummary{}, fmt.Errorf("list games by week: %w", err)
	}
	gamesByMatchup := make(map[string]game.Game, len(games))
	for _, item := range games {
		gamesByMatchup[item.Matchup()] = item
	}

	now := s.now().UTC()
	settled := make([]gameresult.GameResult, 0, len(scores))
	for _, score := range scores {
		var lines gameresult.Lines
		if stored, ok := gamesByMatchup[game.Matchup(score.AwayTeam, score.HomeTeam)]; ok {
			if quote, ok := stored.Quote(s.bookmakerKey); ok {
				lines = gameresult.LinesFromQuote(quote, score.HomeTeam)
			}
		}
		result, ok := gameresult.Settle(s.calendar.Season, week, score, lines, now)
		if !ok {
			continue
		}
		settled = append(settled, result)
	}
	if len(settled) == 0 {
		return RefreshResultsSummary{}, ErrNoGameResults
	}

	if err := s.gameResults.Upsert(ctx, settled); err != nil {
		return RefreshResultsSummary{}, fmt.Errorf("store game results: %w", err)
	}

	snap, err := s.rebuildSnapshot(ctx, week)
	if err != nil {
		return RefreshResultsSummary{}, err
	}
	updated, err := s.recalculate(ctx, week, snap)
	if err != nil {
		return RefreshResultsSummary{}, err
	}

	s.logger.InfoContext(ctx, "game results refreshed",
		"week", week,
		"games_updated", len(settled),
		"picks_updated", updated,
	)
	return RefreshResultsSummary{
		Week:         week,
		GamesUpdated: len(settled),
		PicksUpdated: updated,
	}, nil
}

// Calculate classifies every pick of week against the current snapshot and
// stores the settled outcomes. It returns the number of outcomes written.
func (s *ResultService) Calculate(ctx context.Context, week int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.Calculate")
	defer span.End()

	if week <= 0 {
		return 0, errMissingWeek
	}
	snap, err := s.Snapshot(ctx, week)
	if err != nil {
		return 0, err
	}
	return s.recalculate(ctx, week, snap)
}

func (s *ResultService) recalculate(ctx context.Context, week int, snap resolution.Snapshot) (int, error) {
	items, err := s.picks.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return 0, fmt.Errorf("list picks by week: %w", err)
	}
	if len(items) == 0 || snap.FinalCount() == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	now := s.now().UTC()
	errs := make(chan error, len(items))
	var updated atomic.Int32
	var workers sync.WaitGroup
	for _, item := range items {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			outcome, ok := resolution.Classify(item.Category, item.Value, snap)
			if !ok || !outcome.Settled() {
				return
			}
			if err := s.results.Upsert(ctx, scoring.Result{
				Season:    item.Season,
				Week:      item.Week,
				Player:    item.Player,
				Category:  item.Category,
				Outcome:   outcome,
				PickID:    item.ID,
				UpdatedAt: now,
			}); err != nil {
				errs <- fmt.Errorf("upsert result %s/%s: %w", item.Player, item.Category, err)
				return
			}
			updated.Add(1)
		}); err != nil {
			workers.Done()
			return 0, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return int(updated.Load()), err
		}
	}
	return int(updated.Load()), nil
}

// ListByWeek returns every pick of week with its stored outcome; picks
// without one are pending.
func (s *ResultService) ListByWeek(ctx context.Context, week int) (WeekResults, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.ListByWeek")
	defer span.End()

	if week <= 0 {
		return nil, errMissingWeek
	}

	items, err := s.picks.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks by week: %w", err)
	}
	stored, err := s.results.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return nil, fmt.Errorf("list results by week: %w", err)
	}

	outcomes := outcomeIndex(stored)
	out := make(WeekResults, len(items))
	for _, item := range items {
		row, ok := out[item.Player]
		if !ok {
			row = make(map[pick.Category]PickOutcome)
			out[item.Player] = row
		}
		outcome, ok := outcomes[outcomeKey(item.Player, item.Category)]
		if !ok {
			outcome = scoring.OutcomePending
		}
		row[item.Category] = PickOutcome{Pick: item.Value, Outcome: outcome}
	}
	return out, nil
}

// SaveManual stores a hand-entered verdict, used for touchdown scorers and
// corrections.
func (s *ResultService) SaveManual(ctx context.Context, input ManualResultInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultService.SaveManual")
	defer span.End()

	player := strings.TrimSpace(input.Player)
	if input.Week <= 0 || player == "" || strings.TrimSpace(input.Category) == "" || strings.TrimSpace(input.Outcome) == "" {
		return errMissingData
	}
	if !s.calendar.Contains(input.Week) {
		return errWeekOutOfRange
	}
	outcome, err := scoring.ParseOutcome(input.Outcome)
	if err != nil {
		return errInvalidOutcome
	}

	_, exists, err := s.participants.GetByName(ctx, player)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if !exists {
		return errPlayerNotFound
	}

	category, err := pick.ParseCategory(input.Category)
	if err != nil {
		return errPickNotFound
	}
	item, exists, err := s.picks.Get(ctx, s.calendar.Season, input.Week, player, category)
	if err != nil {
		return fmt.Errorf("get pick: %w", err)
	}
	if !exists {
		return errPickNotFound
	}

	if err := s.results.Upsert(ctx, scoring.Result{
		Season:    item.Season,
		Week:      item.Week,
		Player:    item.Player,
		Category:  item.Category,
		Outcome:   outcome,
		PickID:    item.ID,
		UpdatedAt: s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}

	s.logger.InfoContext(ctx, "manual result saved",
		"week", item.Week,
		"player", item.Player,
		"category", item.Category,
		"outcome", outcome,
	)
	return nil
}

func outcomeIndex(items []scoring.Result) map[string]scoring.Outcome {
	out := make(map[string]scoring.Outcome, len(items))
	for _, item := range items {
		out[outcomeKey(item.Player, item.Category)] = item.Outcome
	}
	return out
}

func outcomeKey(player string, category pick.Category) string {
	return player + "|" + string(category)
}
