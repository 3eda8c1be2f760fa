package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/resolution"
	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// BoardService assembles the per-week views: the options each player can
// choose from and the live grading board.
type BoardService struct {
	games     *GameService
	picks     *PickService
	results   *ResultService
	starters  resolution.StarterSource
	extractor *resolution.Extractor
	logger    *logging.Logger
}

type CategoryOptions struct {
	Category pick.Category
	Choices  []resolution.Choice
	Fallback bool
}

type WeekOptions struct {
	Week       int
	Player     string
	Categories []CategoryOptions
}

type BoardEntry struct {
	Player   string
	Category pick.Category
	Pick     string
	// Live is the classifier verdict against the current snapshot; empty
	// when the pick has no value.
	Live   scoring.Outcome
	Stored scoring.Outcome
}

type WeekBoard struct {
	Week       int
	FinalGames int
	Entries    []BoardEntry
}

func NewBoardService(
	games *GameService,
	picks *PickService,
	results *ResultService,
	starters resolution.StarterSource,
	extractor *resolution.Extractor,
	logger *logging.Logger,
) *BoardService {
	if logger == nil {
		logger = logging.Default()
	}
	if extractor == nil {
		extractor = resolution.NewExtractor(resolution.DefaultBookmaker, nil)
	}
	return &BoardService{
		games:     games,
		picks:     picks,
		results:   results,
		starters:  starters,
		extractor: extractor,
		logger:    logger,
	}
}

// Options lists the choices of every category for week, marking values held
// by players other than player. Touchdown scorers fall back to the static
// list when no starters are available.
func (s *BoardService) Options(ctx context.Context, week int, player string) (WeekOptions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Options")
	defer span.End()

	if week <= 0 {
		return WeekOptions{}, errMissingWeek
	}

	var (
		games []game.Game
		sheet pick.Sheet
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.games.ListByWeek(ctx, week)
		if err != nil {
			return err
		}
		games = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.picks.ListByWeek(ctx, week)
		if err != nil {
			return err
		}
		sheet = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return WeekOptions{}, fmt.Errorf("load week for options: %w", err)
	}

	sets, err := s.extractor.Extract(ctx, games, s.starters)
	if err != nil {
		s.logger.WarnContext(ctx, "touchdown scorer options unavailable", "week", week, "error", err)
	}

	out := WeekOptions{Week: week, Player: player, Categories: make([]CategoryOptions, 0, len(sets))}
	for _, category := range pick.Categories() {
		options := sets[category]
		fallback := false
		if category == pick.CategoryTouchdownScorer && len(options) == 0 {
			options = resolution.FallbackTouchdownScorers()
			fallback = true
		}
		out.Categories = append(out.Categories, CategoryOptions{
			Category: category,
			Choices:  resolution.MarkTaken(options, sheet, category, player),
			Fallback: fallback,
		})
	}
	return out, nil
}

// Board grades every pick of week against the current snapshot and pairs it
// with the stored outcome.
func (s *BoardService) Board(ctx context.Context, week int) (WeekBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.Board")
	defer span.End()

	if week <= 0 {
		return WeekBoard{}, errMissingWeek
	}

	var (
		sheet  pick.Sheet
		stored WeekResults
		snap   resolution.Snapshot
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.picks.ListByWeek(ctx, week)
		if err != nil {
			return err
		}
		sheet = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.results.ListByWeek(ctx, week)
		if err != nil {
			return err
		}
		stored = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		item, err := s.results.Snapshot(ctx, week)
		if err != nil {
			return err
		}
		snap = item
		return nil
	})
	if err := p.Wait(); err != nil {
		return WeekBoard{}, fmt.Errorf("load week for board: %w", err)
	}

	players := make([]string, 0, len(sheet))
	for player := range sheet {
		players = append(players, player)
	}
	sort.Strings(players)

	out := WeekBoard{Week: week, FinalGames: snap.FinalCount()}
	for _, player := range players {
		for _, category := range pick.Categories() {
			value, ok := sheet[player][category]
			if !ok {
				continue
			}
			entry := BoardEntry{
				Player:   player,
				Category: category,
				Pick:     value,
				Stored:   scoring.OutcomePending,
			}
			if live, ok := resolution.Classify(category, value, snap); ok {
				entry.Live = live
			}
			if row, ok := stored[player]; ok {
				if item, ok := row[category]; ok {
					entry.Stored = item.Outcome
				}
			}
			out.Entries = append(out.Entries, entry)
		}
	}
	return out, nil
}
