package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/resolution"
)

const (
	dallas       = "Dallas Cowboys"
	philadelphia = "Philadelphia Eagles"
	kansasCity   = "Kansas City Chiefs"
	losAngeles   = "Los Angeles Chargers"
)

var fixtureNow = time.Date(2025, 9, 8, 12, 0, 0, 0, time.UTC)

func point(v float64) *float64 { return &v }

func score(v int) *int { return &v }

// quoted builds a week-one game with a full draftkings quote.
func quoted(away, home string, homeSpread, total float64, commence time.Time) game.Game {
	return game.Game{
		AwayTeam:     away,
		HomeTeam:     home,
		CommenceTime: commence,
		Bookmakers: game.Bookmakers{
			{
				Key:   resolution.DefaultBookmaker,
				Title: "DraftKings",
				Markets: []game.Market{
					{Key: game.MarketMoneyline, Outcomes: []game.Outcome{
						{Name: away, Price: 250},
						{Name: home, Price: -310},
					}},
					{Key: game.MarketSpreads, Outcomes: []game.Outcome{
						{Name: away, Price: -110, Point: point(-homeSpread)},
						{Name: home, Price: -110, Point: point(homeSpread)},
					}},
					{Key: game.MarketTotals, Outcomes: []game.Outcome{
						{Name: game.OutcomeOver, Price: -110, Point: point(total)},
						{Name: game.OutcomeUnder, Price: -110, Point: point(total)},
					}},
				},
			},
		},
	}
}

func openerGame() game.Game {
	return quoted(dallas, philadelphia, -7.5, 47.5, time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC))
}

func fridayGame() game.Game {
	return quoted(kansasCity, losAngeles, 3.5, 45.5, time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC))
}

func inSeason(items ...game.Game) []game.Game {
	out := make([]game.Game, 0, len(items))
	for _, item := range items {
		item.Season = 2025
		item.Week = 1
		item.UpdatedAt = fixtureNow
		out = append(out, item)
	}
	return out
}

func weekPick(player string, category pick.Category, value string) pick.Pick {
	return pick.Pick{
		Season:    2025,
		Week:      1,
		Player:    player,
		Category:  category,
		Value:     value,
		UpdatedAt: fixtureNow,
	}
}

type fakeOdds struct {
	mu         sync.Mutex
	games      []game.Game
	scores     []gameresult.Score
	oddsErr    error
	scoresErr  error
	oddsCalls  int
	scoreCalls int
}

func (f *fakeOdds) FetchOdds(context.Context) ([]game.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oddsCalls++
	if f.oddsErr != nil {
		return nil, f.oddsErr
	}
	out := make([]game.Game, len(f.games))
	copy(out, f.games)
	return out, nil
}

func (f *fakeOdds) FetchScores(_ context.Context, _, _ time.Time) ([]gameresult.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoreCalls++
	if f.scoresErr != nil {
		return nil, f.scoresErr
	}
	out := make([]gameresult.Score, len(f.scores))
	copy(out, f.scores)
	return out, nil
}

func (f *fakeOdds) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.oddsCalls, f.scoreCalls
}

func seedPicks(t *testing.T, repo pick.Repository, items ...pick.Pick) {
	t.Helper()
	for _, item := range items {
		if _, err := repo.Upsert(context.Background(), item); err != nil {
			t.Fatalf("seed pick %s/%s: %v", item.Player, item.Category, err)
		}
	}
}

func seedGames(t *testing.T, repo game.Repository, items ...game.Game) {
	t.Helper()
	if err := repo.Upsert(context.Background(), items); err != nil {
		t.Fatalf("seed games: %v", err)
	}
}
