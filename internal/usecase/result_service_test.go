package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/participant"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/infrastructure/repository/memory"
	"github.com/magentamen/picks/internal/infrastructure/snapshot"
	"github.com/magentamen/picks/internal/platform/logging"
)

type resultFixture struct {
	games        *memory.GameRepository
	gameResults  *memory.GameResultRepository
	picks        *memory.PickRepository
	participants *memory.ParticipantRepository
	results      *memory.ResultRepository
	odds         *fakeOdds
	service      *ResultService
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()

	f := &resultFixture{
		games:        memory.NewGameRepository(),
		gameResults:  memory.NewGameResultRepository(),
		picks:        memory.NewPickRepository(),
		participants: memory.NewParticipantRepository(),
		results:      memory.NewResultRepository(),
		odds:         &fakeOdds{},
	}
	f.service = NewResultService(
		f.games,
		f.gameResults,
		f.picks,
		f.participants,
		f.results,
		snapshot.NewMemoryStore(),
		f.odds,
		ResultServiceConfig{Calendar: season.Default(), Workers: 2},
		logging.NewNop(),
	)
	f.service.now = func() time.Time { return fixtureNow }

	seedGames(t, f.games, inSeason(openerGame(), fridayGame())...)
	seedPicks(t, f.picks,
		weekPick("JB", pick.CategoryMoneyline, philadelphia),
		weekPick("Zach", pick.CategoryUnderdog, dallas),
		weekPick("Rory", pick.CategoryOver, "Over 47.5 (Dallas Cowboys @ Philadelphia Eagles)"),
		weekPick("Jaren", pick.CategoryTouchdownScorer, "Jalen Hurts (PHI)"),
		weekPick("JB", pick.CategoryFavorite, kansasCity),
	)
	for _, name := range []string{"JB", "Zach", "Rory", "Jaren"} {
		if err := f.participants.Create(context.Background(), participant.Participant{ID: "p-" + name, Name: name, CreatedAt: fixtureNow}); err != nil {
			t.Fatalf("seed participant: %v", err)
		}
	}
	return f
}

// openerFinal is Eagles 24, Cowboys 20: Eagles win, Cowboys cover +7.5, 44 stays under 47.5.
func openerFinal() gameresult.Score {
	return gameresult.Score{
		AwayTeam:  dallas,
		HomeTeam:  philadelphia,
		Completed: true,
		HomeScore: score(24),
		AwayScore: score(20),
	}
}

func TestResultService_RefreshGameResults_SettlesAndRecalculates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newResultFixture(t)
	f.odds.scores = []gameresult.Score{
		openerFinal(),
		{AwayTeam: kansasCity, HomeTeam: losAngeles, Completed: false},
	}

	summary, err := f.service.RefreshGameResults(ctx, 1)
	if err != nil {
		t.Fatalf("refresh results: %v", err)
	}
	if summary.GamesUpdated != 1 || summary.PicksUpdated != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	stored, err := f.service.GameResults(ctx, 1)
	if err != nil {
		t.Fatalf("list game results: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 settled game, got %d", len(stored))
	}
	got := stored[0]
	if got.MoneylineWinner != philadelphia || got.SpreadWinner != dallas || got.TotalResult != gameresult.TotalUnder {
		t.Fatalf("unexpected settlement: %+v", got)
	}
	if got.Spread == nil || *got.Spread != -7.5 || got.Total == nil || *got.Total != 47.5 {
		t.Fatalf("expected posted lines on result, got spread=%v total=%v", got.Spread, got.Total)
	}

	week, err := f.service.ListByWeek(ctx, 1)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	cases := []struct {
		player   string
		category pick.Category
		want     scoring.Outcome
	}{
		{"JB", pick.CategoryMoneyline, scoring.OutcomeWin},
		{"Zach", pick.CategoryUnderdog, scoring.OutcomeWin},
		{"Rory", pick.CategoryOver, scoring.OutcomeLoss},
		{"Jaren", pick.CategoryTouchdownScorer, scoring.OutcomePending},
		{"JB", pick.CategoryFavorite, scoring.OutcomePending},
	}
	for _, tc := range cases {
		if got := week[tc.player][tc.category].Outcome; got != tc.want {
			t.Fatalf("%s %s: expected %s, got %s", tc.player, tc.category, tc.want, got)
		}
	}
}

func TestResultService_RefreshGameResults_NoCompletedGames(t *testing.T) {
	t.Parallel()

	f := newResultFixture(t)
	f.odds.scores = []gameresult.Score{{AwayTeam: dallas, HomeTeam: philadelphia, HomeScore: score(7), AwayScore: score(3)}}

	_, err := f.service.RefreshGameResults(context.Background(), 1)
	if !errors.Is(err, ErrNoGameResults) {
		t.Fatalf("expected ErrNoGameResults, got %v", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected no results to map to invalid input, got %v", err)
	}
}

func TestResultService_RefreshGameResults_ProviderFailure(t *testing.T) {
	t.Parallel()

	f := newResultFixture(t)
	f.odds.scoresErr = errors.New("connection reset")

	_, err := f.service.RefreshGameResults(context.Background(), 1)
	if !errors.Is(err, ErrNoGameResults) {
		t.Fatalf("expected ErrNoGameResults, got %v", err)
	}
}

func TestResultService_RefreshGameResults_GradesSpreadAndTotal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newResultFixture(t)
	seedPicks(t, f.picks, weekPick("Rory", pick.CategoryUnder, "Under 45.5 (Kansas City Chiefs @ Los Angeles Chargers)"))
	// 24-21 Chargers: Chargers +3.5 cover, 45 stays under 45.5
	f.odds.scores = []gameresult.Score{{
		AwayTeam:  kansasCity,
		HomeTeam:  losAngeles,
		Completed: true,
		HomeScore: score(24),
		AwayScore: score(21),
	}}

	if _, err := f.service.RefreshGameResults(ctx, 1); err != nil {
		t.Fatalf("refresh results: %v", err)
	}
	week, err := f.service.ListByWeek(ctx, 1)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if got := week["Rory"][pick.CategoryUnder].Outcome; got != scoring.OutcomeWin {
		t.Fatalf("expected under to win, got %s", got)
	}
	if got := week["JB"][pick.CategoryFavorite].Outcome; got != scoring.OutcomeLoss {
		t.Fatalf("expected favorite Chiefs to lose against the spread, got %s", got)
	}
}

func TestResultService_Calculate_WithoutFinalGames(t *testing.T) {
	t.Parallel()

	f := newResultFixture(t)

	updated, err := f.service.Calculate(context.Background(), 1)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected no updates without final games, got %d", updated)
	}

	if _, err := f.service.Calculate(context.Background(), 0); Message(err) != "Missing week parameter" {
		t.Fatalf("expected missing week error, got %v", err)
	}
}

func TestResultService_Calculate_UsesStoredResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newResultFixture(t)
	settled, ok := gameresult.Settle(2025, 1, openerFinal(), gameresult.Lines{HomeSpread: point(-7.5), Total: point(47.5)}, fixtureNow)
	if !ok {
		t.Fatal("expected opener to settle")
	}
	if err := f.gameResults.Upsert(ctx, []gameresult.GameResult{settled}); err != nil {
		t.Fatalf("seed game result: %v", err)
	}

	updated, err := f.service.Calculate(ctx, 1)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if updated != 3 {
		t.Fatalf("expected 3 settled picks, got %d", updated)
	}

	again, err := f.service.Calculate(ctx, 1)
	if err != nil || again != 3 {
		t.Fatalf("expected recalculation to be stable, got %d %v", again, err)
	}
}

func TestResultService_SaveManual(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newResultFixture(t)

	err := f.service.SaveManual(ctx, ManualResultInput{Week: 1, Player: "Jaren", Category: "Touchdown Scorer", Outcome: "WIN"})
	if err != nil {
		t.Fatalf("save manual result: %v", err)
	}
	week, err := f.service.ListByWeek(ctx, 1)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if got := week["Jaren"][pick.CategoryTouchdownScorer]; got.Outcome != scoring.OutcomeWin || got.Pick != "Jalen Hurts (PHI)" {
		t.Fatalf("unexpected manual result: %+v", got)
	}
}

func TestResultService_SaveManual_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input ManualResultInput
		want  string
	}{
		{"missing outcome", ManualResultInput{Week: 1, Player: "JB", Category: "Moneyline"}, "Missing required data"},
		{"pending outcome", ManualResultInput{Week: 1, Player: "JB", Category: "Moneyline", Outcome: "pending"}, "Invalid outcome"},
		{"unknown player", ManualResultInput{Week: 1, Player: "Nobody", Category: "Moneyline", Outcome: "win"}, "Player not found"},
		{"no pick", ManualResultInput{Week: 1, Player: "Zach", Category: "Moneyline", Outcome: "win"}, "Pick not found"},
		{"week past season", ManualResultInput{Week: 99, Player: "JB", Category: "Moneyline", Outcome: "win"}, "Week is outside the season"},
	}

	f := newResultFixture(t)
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := f.service.SaveManual(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected user error, got %v", err)
			}
			if got := Message(err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
