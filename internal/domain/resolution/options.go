package resolution

import (
	"context"
	"fmt"
	"strconv"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/player"
	"github.com/valyala/bytebufferpool"
)

const DefaultBookmaker = "draftkings"

// Option is one selectable value for a category.
type Option struct {
	Label string
	Value string
}

// Abbreviator resolves a full team name to its abbreviation.
type Abbreviator interface {
	Abbreviation(name string) string
}

// StarterSource looks up active starters for a set of team abbreviations.
type StarterSource interface {
	ListActiveByTeams(ctx context.Context, teams []string) ([]player.Player, error)
}

type passThrough struct{}

func (passThrough) Abbreviation(name string) string { return name }

// Extractor derives per-category options from the designated bookmaker's quotes.
type Extractor struct {
	bookmakerKey string
	teams        Abbreviator
}

func NewExtractor(bookmakerKey string, teams Abbreviator) *Extractor {
	if bookmakerKey == "" {
		bookmakerKey = DefaultBookmaker
	}
	if teams == nil {
		teams = passThrough{}
	}
	return &Extractor{bookmakerKey: bookmakerKey, teams: teams}
}

func (e *Extractor) BookmakerKey() string {
	return e.bookmakerKey
}

// Moneyline emits one option per h2h outcome, deduplicated by team.
func (e *Extractor) Moneyline(games []game.Game) []Option {
	set := newOptionSet()
	for _, item := range games {
		market, ok := e.market(item, game.MarketMoneyline)
		if !ok {
			continue
		}
		for _, outcome := range market.Outcomes {
			if outcome.Name == "" {
				continue
			}
			set.put(outcome.Name, Option{
				Label: teamLabel(outcome.Name, formatSigned(outcome.Price)),
				Value: outcome.Name,
			})
		}
	}
	return set.list()
}

// Favorites emits teams laying points in two-outcome spread markets.
func (e *Extractor) Favorites(games []game.Game) []Option {
	return e.spreadSide(games, func(point float64) bool { return point < 0 })
}

// Underdogs emits teams getting points in two-outcome spread markets.
func (e *Extractor) Underdogs(games []game.Game) []Option {
	return e.spreadSide(games, func(point float64) bool { return point > 0 })
}

func (e *Extractor) Overs(games []game.Game) []Option {
	return e.totalSide(games, game.OutcomeOver)
}

func (e *Extractor) Unders(games []game.Game) []Option {
	return e.totalSide(games, game.OutcomeUnder)
}

// TeamsInPlay returns the abbreviations of every team on the slate in
// first-seen order.
func (e *Extractor) TeamsInPlay(games []game.Game) []string {
	out := make([]string, 0, len(games)*2)
	seen := make(map[string]struct{}, len(games)*2)
	for _, item := range games {
		for _, name := range []string{item.HomeTeam, item.AwayTeam} {
			if name == "" {
				continue
			}
			abbr := e.teams.Abbreviation(name)
			if _, ok := seen[abbr]; ok {
				continue
			}
			seen[abbr] = struct{}{}
			out = append(out, abbr)
		}
	}
	return out
}

// TouchdownScorers issues one starters lookup for the slate. Any failure
// yields an empty option list together with the cause.
func (e *Extractor) TouchdownScorers(ctx context.Context, games []game.Game, source StarterSource) ([]Option, error) {
	teams := e.TeamsInPlay(games)
	if len(teams) == 0 {
		return []Option{}, nil
	}
	if source == nil {
		return []Option{}, fmt.Errorf("starter source is not configured")
	}

	starters, err := source.ListActiveByTeams(ctx, teams)
	if err != nil {
		return []Option{}, fmt.Errorf("list starters: %w", err)
	}
	return ScorerOptions(starters), nil
}

func ScorerOptions(starters []player.Player) []Option {
	out := make([]Option, 0, len(starters))
	for _, item := range starters {
		value := teamLabel(item.Name, item.Team)
		out = append(out, Option{
			Label: value + " - " + string(item.Position),
			Value: value,
		})
	}
	return out
}

var fallbackScorers = []player.Player{
	{Name: "Patrick Mahomes", Team: "KC", Position: player.PositionQuarterback, Active: true},
	{Name: "Josh Allen", Team: "BUF", Position: player.PositionQuarterback, Active: true},
	{Name: "Lamar Jackson", Team: "BAL", Position: player.PositionQuarterback, Active: true},
}

// FallbackTouchdownScorers is the static list shown when starters are unavailable.
func FallbackTouchdownScorers() []Option {
	return ScorerOptions(fallbackScorers)
}

// Sets holds the options of every category for one slate.
type Sets map[pick.Category][]Option

// Extract derives all six categories. The touchdown scorer error is
// returned alongside complete sets; callers decide on the fallback.
func (e *Extractor) Extract(ctx context.Context, games []game.Game, source StarterSource) (Sets, error) {
	scorers, err := e.TouchdownScorers(ctx, games, source)
	return Sets{
		pick.CategoryMoneyline:       e.Moneyline(games),
		pick.CategoryFavorite:        e.Favorites(games),
		pick.CategoryUnderdog:        e.Underdogs(games),
		pick.CategoryOver:            e.Overs(games),
		pick.CategoryUnder:           e.Unders(games),
		pick.CategoryTouchdownScorer: scorers,
	}, err
}

func (e *Extractor) spreadSide(games []game.Game, keep func(point float64) bool) []Option {
	set := newOptionSet()
	for _, item := range games {
		market, ok := e.market(item, game.MarketSpreads)
		if !ok || len(market.Outcomes) != 2 {
			continue
		}
		for _, outcome := range market.Outcomes {
			point, ok := outcome.PointValue()
			if !ok || outcome.Name == "" || !keep(point) {
				continue
			}
			set.put(outcome.Name, Option{
				Label: teamLabel(outcome.Name, formatSigned(point)),
				Value: outcome.Name,
			})
		}
	}
	return set.list()
}

func (e *Extractor) totalSide(games []game.Game, side string) []Option {
	set := newOptionSet()
	for _, item := range games {
		market, ok := e.market(item, game.MarketTotals)
		if !ok {
			continue
		}
		for _, outcome := range market.Outcomes {
			point, ok := outcome.PointValue()
			if !ok || outcome.Name != side {
				continue
			}
			label := TotalLabel(side, point, item.AwayTeam, item.HomeTeam)
			set.put(label, Option{Label: label, Value: label})
		}
	}
	return set.list()
}

func (e *Extractor) market(item game.Game, key string) (game.Market, bool) {
	quote, ok := item.Quote(e.bookmakerKey)
	if !ok {
		return game.Market{}, false
	}
	return quote.Market(key)
}

// TotalLabel renders "{side} {point} ({away} @ {home})".
func TotalLabel(side string, point float64, away, home string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(side)
	_ = buf.WriteByte(' ')
	_, _ = buf.WriteString(formatNumber(point))
	_, _ = buf.WriteString(" (")
	_, _ = buf.WriteString(game.Matchup(away, home))
	_ = buf.WriteByte(')')
	return buf.String()
}

func teamLabel(name, detail string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(name)
	_, _ = buf.WriteString(" (")
	_, _ = buf.WriteString(detail)
	_ = buf.WriteByte(')')
	return buf.String()
}

func formatSigned(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type optionSet struct {
	order []string
	byKey map[string]Option
}

func newOptionSet() *optionSet {
	return &optionSet{byKey: make(map[string]Option)}
}

// put keeps first-seen order while the latest option for a key wins.
func (s *optionSet) put(key string, option Option) {
	if _, ok := s.byKey[key]; !ok {
		s.order = append(s.order, key)
	}
	s.byKey[key] = option
}

func (s *optionSet) list() []Option {
	out := make([]Option, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out
}
