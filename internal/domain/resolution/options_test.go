package resolution

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/player"
	"github.com/magentamen/picks/internal/domain/team"
)

func pt(v float64) *float64 { return &v }

func quotedGame(away, home string, markets ...game.Market) game.Game {
	return game.Game{
		Season:   2025,
		Week:     1,
		AwayTeam: away,
		HomeTeam: home,
		Bookmakers: game.Bookmakers{
			{Key: "fanduel", Markets: []game.Market{{Key: game.MarketMoneyline, Outcomes: []game.Outcome{{Name: "Ignored Team", Price: 999}}}}},
			{Key: DefaultBookmaker, Title: "DraftKings", Markets: markets},
		},
	}
}

func h2h(outcomes ...game.Outcome) game.Market {
	return game.Market{Key: game.MarketMoneyline, Outcomes: outcomes}
}

func spreads(outcomes ...game.Outcome) game.Market {
	return game.Market{Key: game.MarketSpreads, Outcomes: outcomes}
}

func totals(point float64) game.Market {
	return game.Market{Key: game.MarketTotals, Outcomes: []game.Outcome{
		{Name: game.OutcomeOver, Price: -110, Point: pt(point)},
		{Name: game.OutcomeUnder, Price: -110, Point: pt(point)},
	}}
}

func TestMoneyline_FormatsPricesAndDeduplicates(t *testing.T) {
	t.Parallel()

	games := []game.Game{
		quotedGame("New York Jets", "Buffalo Bills", h2h(
			game.Outcome{Name: "New York Jets", Price: 245},
			game.Outcome{Name: "Buffalo Bills", Price: -300},
		)),
		quotedGame("Buffalo Bills", "Miami Dolphins", h2h(
			game.Outcome{Name: "Buffalo Bills", Price: -280},
			game.Outcome{Name: "Miami Dolphins", Price: 230},
		)),
	}

	got := NewExtractor("", nil).Moneyline(games)
	want := []Option{
		{Label: "New York Jets (+245)", Value: "New York Jets"},
		{Label: "Buffalo Bills (-280)", Value: "Buffalo Bills"},
		{Label: "Miami Dolphins (+230)", Value: "Miami Dolphins"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected moneyline options:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestFavoritesAndUnderdogs(t *testing.T) {
	t.Parallel()

	games := []game.Game{
		quotedGame("New York Jets", "Buffalo Bills", spreads(
			game.Outcome{Name: "New York Jets", Price: -110, Point: pt(7.5)},
			game.Outcome{Name: "Buffalo Bills", Price: -110, Point: pt(-7.5)},
		)),
		quotedGame("Dallas Cowboys", "Philadelphia Eagles", spreads(
			game.Outcome{Name: "Dallas Cowboys", Price: -110, Point: pt(0)},
			game.Outcome{Name: "Philadelphia Eagles", Price: -110, Point: pt(0)},
		)),
		quotedGame("Chicago Bears", "Green Bay Packers", spreads(
			game.Outcome{Name: "Chicago Bears", Price: -110, Point: pt(3)},
			game.Outcome{Name: "Green Bay Packers", Price: -110, Point: pt(-3)},
			game.Outcome{Name: "Extra", Price: -110, Point: pt(1)},
		)),
	}

	extractor := NewExtractor(DefaultBookmaker, nil)
	favorites := extractor.Favorites(games)
	underdogs := extractor.Underdogs(games)

	wantFav := []Option{{Label: "Buffalo Bills (-7.5)", Value: "Buffalo Bills"}}
	wantDog := []Option{{Label: "New York Jets (+7.5)", Value: "New York Jets"}}
	if !reflect.DeepEqual(favorites, wantFav) {
		t.Fatalf("unexpected favorites: %+v", favorites)
	}
	if !reflect.DeepEqual(underdogs, wantDog) {
		t.Fatalf("unexpected underdogs: %+v", underdogs)
	}
}

func TestSpreadMarketsSplitIntoOneFavoriteAndOneUnderdog(t *testing.T) {
	t.Parallel()

	points := []float64{-1, -2.5, -3, -6.5, -10, -14.5}
	extractor := NewExtractor(DefaultBookmaker, nil)
	for _, point := range points {
		g := quotedGame("Away", "Home", spreads(
			game.Outcome{Name: "Away", Point: pt(-point)},
			game.Outcome{Name: "Home", Point: pt(point)},
		))
		favorites := extractor.Favorites([]game.Game{g})
		underdogs := extractor.Underdogs([]game.Game{g})
		if len(favorites) != 1 || len(underdogs) != 1 {
			t.Fatalf("point %v: expected one favorite and one underdog, got %d/%d", point, len(favorites), len(underdogs))
		}
		if favorites[0].Value == underdogs[0].Value {
			t.Fatalf("point %v: same team on both sides", point)
		}
	}
}

func TestOversAndUnders(t *testing.T) {
	t.Parallel()

	games := []game.Game{
		quotedGame("New York Jets", "Buffalo Bills", totals(47.5)),
		quotedGame("Dallas Cowboys", "Philadelphia Eagles", totals(47.5)),
		quotedGame("New York Jets", "Buffalo Bills", totals(47.5)),
	}

	extractor := NewExtractor(DefaultBookmaker, nil)
	overs := extractor.Overs(games)
	unders := extractor.Unders(games)

	wantOvers := []Option{
		{Label: "Over 47.5 (New York Jets @ Buffalo Bills)", Value: "Over 47.5 (New York Jets @ Buffalo Bills)"},
		{Label: "Over 47.5 (Dallas Cowboys @ Philadelphia Eagles)", Value: "Over 47.5 (Dallas Cowboys @ Philadelphia Eagles)"},
	}
	if !reflect.DeepEqual(overs, wantOvers) {
		t.Fatalf("unexpected overs: %+v", overs)
	}
	if len(unders) != 2 || unders[0].Value != "Under 47.5 (New York Jets @ Buffalo Bills)" {
		t.Fatalf("unexpected unders: %+v", unders)
	}
}

func TestExtraction_SkipsGamesWithoutUsableQuotes(t *testing.T) {
	t.Parallel()

	games := []game.Game{
		{AwayTeam: "No", HomeTeam: "Quotes"},
		{AwayTeam: "Other", HomeTeam: "Book", Bookmakers: game.Bookmakers{{Key: "fanduel", Markets: []game.Market{h2h(game.Outcome{Name: "Other", Price: 100})}}}},
		quotedGame("Missing", "Point", spreads(
			game.Outcome{Name: "Missing", Price: -110},
			game.Outcome{Name: "Point", Price: -110, Point: pt(-3)},
		), game.Market{Key: game.MarketTotals, Outcomes: []game.Outcome{{Name: game.OutcomeOver}}}),
		quotedGame("New York Jets", "Buffalo Bills", h2h(game.Outcome{Name: "Buffalo Bills", Price: -300})),
	}

	extractor := NewExtractor(DefaultBookmaker, nil)
	if got := extractor.Moneyline(games); len(got) != 1 || got[0].Value != "Buffalo Bills" {
		t.Fatalf("unexpected moneyline options: %+v", got)
	}
	if got := extractor.Favorites(games); len(got) != 1 || got[0].Value != "Point" {
		t.Fatalf("unexpected favorites: %+v", got)
	}
	if got := extractor.Underdogs(games); len(got) != 0 {
		t.Fatalf("expected no underdogs, got %+v", got)
	}
	if got := extractor.Overs(games); len(got) != 0 {
		t.Fatalf("expected no overs, got %+v", got)
	}
}

type starterStub struct {
	calls   int
	teams   []string
	players []player.Player
	err     error
}

func (s *starterStub) ListActiveByTeams(_ context.Context, teams []string) ([]player.Player, error) {
	s.calls++
	s.teams = teams
	return s.players, s.err
}

func TestTouchdownScorers(t *testing.T) {
	t.Parallel()

	dir := team.NewDirectory([]team.Team{
		{Name: "Buffalo Bills", Abbreviation: "BUF"},
		{Name: "New York Jets", Abbreviation: "NYJ"},
	})
	games := []game.Game{
		{AwayTeam: "New York Jets", HomeTeam: "Buffalo Bills"},
		{AwayTeam: "Buffalo Bills", HomeTeam: "London Monarchs"},
	}
	source := &starterStub{players: []player.Player{
		{Name: "Josh Allen", Team: "BUF", Position: player.PositionQuarterback},
		{Name: "Garrett Wilson", Team: "NYJ", Position: player.PositionWideReceiver},
	}}

	got, err := NewExtractor(DefaultBookmaker, dir).TouchdownScorers(context.Background(), games, source)
	if err != nil {
		t.Fatalf("touchdown scorers: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one starters lookup, got %d", source.calls)
	}
	wantTeams := []string{"BUF", "NYJ", "London Monarchs"}
	if !reflect.DeepEqual(source.teams, wantTeams) {
		t.Fatalf("unexpected teams: %v", source.teams)
	}
	want := []Option{
		{Label: "Josh Allen (BUF) - QB", Value: "Josh Allen (BUF)"},
		{Label: "Garrett Wilson (NYJ) - WR", Value: "Garrett Wilson (NYJ)"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected scorers: %+v", got)
	}
}

func TestTouchdownScorers_FailureYieldsEmptySet(t *testing.T) {
	t.Parallel()

	games := []game.Game{{AwayTeam: "New York Jets", HomeTeam: "Buffalo Bills"}}
	source := &starterStub{err: errors.New("connection refused")}

	got, err := NewExtractor(DefaultBookmaker, nil).TouchdownScorers(context.Background(), games, source)
	if err == nil {
		t.Fatalf("expected error to be reported")
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil option list, got %+v", got)
	}

	empty, err := NewExtractor(DefaultBookmaker, nil).TouchdownScorers(context.Background(), nil, source)
	if err != nil || len(empty) != 0 || source.calls != 1 {
		t.Fatalf("expected no lookup for empty slate: options=%+v err=%v calls=%d", empty, err, source.calls)
	}
}

func TestFallbackTouchdownScorers(t *testing.T) {
	t.Parallel()

	got := FallbackTouchdownScorers()
	want := []Option{
		{Label: "Patrick Mahomes (KC) - QB", Value: "Patrick Mahomes (KC)"},
		{Label: "Josh Allen (BUF) - QB", Value: "Josh Allen (BUF)"},
		{Label: "Lamar Jackson (BAL) - QB", Value: "Lamar Jackson (BAL)"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected fallback: %+v", got)
	}
}

func TestExtract_ReturnsAllCategories(t *testing.T) {
	t.Parallel()

	games := []game.Game{quotedGame("New York Jets", "Buffalo Bills", h2h(game.Outcome{Name: "Buffalo Bills", Price: -300}), totals(44))}
	sets, err := NewExtractor(DefaultBookmaker, nil).Extract(context.Background(), games, &starterStub{})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	for _, category := range pick.Categories() {
		if _, ok := sets[category]; !ok {
			t.Fatalf("missing category %s", category)
		}
	}
	if got := sets[pick.CategoryOver]; len(got) != 1 || got[0].Value != "Over 44 (New York Jets @ Buffalo Bills)" {
		t.Fatalf("unexpected overs: %+v", got)
	}
}

func TestMarkTaken(t *testing.T) {
	t.Parallel()

	options := []Option{{Label: "Buffalo Bills (-300)", Value: "Buffalo Bills"}, {Label: "New York Jets (+245)", Value: "New York Jets"}}
	sheet := pick.SheetFrom([]pick.Pick{
		{Player: "Rory", Category: pick.CategoryMoneyline, Value: "Buffalo Bills"},
		{Player: "Zach", Category: pick.CategoryMoneyline, Value: "New York Jets"},
	})

	got := MarkTaken(options, sheet, pick.CategoryMoneyline, "Zach")
	if !got[0].Taken || got[0].TakenBy != "Rory" {
		t.Fatalf("expected Buffalo Bills taken by Rory: %+v", got[0])
	}
	if got[1].Taken {
		t.Fatalf("a player's own pick must stay available: %+v", got[1])
	}
}
