package usecase

import (
	"context"
	"testing"

	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/player"
	"github.com/magentamen/picks/internal/domain/resolution"
	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/domain/team"
	"github.com/magentamen/picks/internal/infrastructure/repository/memory"
	"github.com/magentamen/picks/internal/platform/logging"
)

func newBoardFixture(t *testing.T, starters resolution.StarterSource) (*BoardService, *resultFixture) {
	t.Helper()

	f := newResultFixture(t)
	games := newGameService(f.games, nil)
	picks := NewPickService(f.picks, f.participants, memory.NewWeekLockRepository(), nil, season.Default(), logging.NewNop())
	extractor := resolution.NewExtractor(resolution.DefaultBookmaker, team.NewDirectory(memory.SeedTeams()))
	return NewBoardService(games, picks, f.service, starters, extractor, logging.NewNop()), f
}

func findCategory(t *testing.T, options WeekOptions, category pick.Category) CategoryOptions {
	t.Helper()
	for _, item := range options.Categories {
		if item.Category == category {
			return item
		}
	}
	t.Fatalf("category %s missing from options", category)
	return CategoryOptions{}
}

func TestBoardService_Options_MarksValuesTakenByOthers(t *testing.T) {
	t.Parallel()

	starters := NewStarterService(memory.NewPlayerRepository([]player.Player{
		{ID: "phi-hurts", Name: "Jalen Hurts", Position: player.PositionQuarterback, Team: "PHI", Active: true},
		{ID: "dal-lamb", Name: "CeeDee Lamb", Position: player.PositionWideReceiver, Team: "DAL", Active: true},
		{ID: "dal-old", Name: "Retired Back", Position: player.PositionRunningBack, Team: "DAL", Active: false},
	}))
	service, _ := newBoardFixture(t, starters)

	options, err := service.Options(context.Background(), 1, "Zach")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(options.Categories) != len(pick.Categories()) {
		t.Fatalf("expected every category, got %d", len(options.Categories))
	}

	moneyline := findCategory(t, options, pick.CategoryMoneyline)
	var eagles *resolution.Choice
	for i := range moneyline.Choices {
		if moneyline.Choices[i].Value == philadelphia {
			eagles = &moneyline.Choices[i]
		}
	}
	if eagles == nil || !eagles.Taken || eagles.TakenBy != "JB" {
		t.Fatalf("expected Eagles moneyline taken by JB, got %+v", eagles)
	}

	// a player's own pick is never shown as taken
	underdog := findCategory(t, options, pick.CategoryUnderdog)
	for _, choice := range underdog.Choices {
		if choice.Value == dallas && choice.Taken {
			t.Fatalf("expected own underdog pick to stay selectable: %+v", choice)
		}
	}

	scorers := findCategory(t, options, pick.CategoryTouchdownScorer)
	if scorers.Fallback {
		t.Fatal("expected starters instead of fallback")
	}
	if len(scorers.Choices) != 2 {
		t.Fatalf("expected 2 active starters, got %+v", scorers.Choices)
	}
}

func TestBoardService_Options_FallsBackWithoutStarters(t *testing.T) {
	t.Parallel()

	service, _ := newBoardFixture(t, nil)

	options, err := service.Options(context.Background(), 1, "JB")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	scorers := findCategory(t, options, pick.CategoryTouchdownScorer)
	if !scorers.Fallback || len(scorers.Choices) != len(resolution.FallbackTouchdownScorers()) {
		t.Fatalf("expected fallback scorers, got %+v", scorers)
	}
}

func TestBoardService_Board_PairsLiveAndStoredOutcomes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, f := newBoardFixture(t, nil)
	f.odds.scores = []gameresult.Score{openerFinal()}
	if _, err := f.service.RefreshGameResults(ctx, 1); err != nil {
		t.Fatalf("refresh results: %v", err)
	}

	board, err := service.Board(ctx, 1)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if board.FinalGames != 1 {
		t.Fatalf("expected 1 final game, got %d", board.FinalGames)
	}
	if len(board.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(board.Entries))
	}

	first := board.Entries[0]
	if first.Player != "JB" || first.Category != pick.CategoryMoneyline {
		t.Fatalf("expected entries ordered by player then category, got %+v", first)
	}
	if first.Live != scoring.OutcomeWin || first.Stored != scoring.OutcomeWin {
		t.Fatalf("expected JB's moneyline to win, got %+v", first)
	}

	for _, entry := range board.Entries {
		switch {
		case entry.Player == "Rory" && (entry.Live != scoring.OutcomeLoss || entry.Stored != scoring.OutcomeLoss):
			t.Fatalf("expected Rory's over to lose, got %+v", entry)
		case entry.Player == "Jaren" && (entry.Live != scoring.OutcomePending || entry.Stored != scoring.OutcomePending):
			t.Fatalf("expected touchdown scorer pending, got %+v", entry)
		}
	}
}

func TestLeaderboardService_Standings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newResultFixture(t)
	f.odds.scores = []gameresult.Score{openerFinal()}
	if _, err := f.service.RefreshGameResults(ctx, 1); err != nil {
		t.Fatalf("refresh results: %v", err)
	}

	standings, err := NewLeaderboardService(f.results, season.Default()).Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings) != 3 {
		t.Fatalf("expected 3 ranked players, got %d", len(standings))
	}
	if standings[0].Player != "JB" || standings[0].TotalPoints != scoring.PointsWin {
		t.Fatalf("expected JB first on name tiebreak, got %+v", standings[0])
	}
	if last := standings[2]; last.Player != "Rory" || last.Record() != "0-1-0" {
		t.Fatalf("expected Rory last at 0-1-0, got %+v", last)
	}
}

func TestStarterService_NormalizesTeams(t *testing.T) {
	t.Parallel()

	service := NewStarterService(memory.NewPlayerRepository([]player.Player{
		{ID: "kc-1", Name: "Patrick Mahomes", Position: player.PositionQuarterback, Team: "KC", Active: true},
	}))

	items, err := service.ListActiveByTeams(context.Background(), []string{" kc ", "KC"})
	if err != nil {
		t.Fatalf("list starters: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 starter, got %d", len(items))
	}

	items, err = service.ListActiveByTeams(context.Background(), nil)
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("expected empty starters, got %v %v", items, err)
	}
}
