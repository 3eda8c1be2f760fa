package game

import (
	"fmt"
	"strings"
	"time"
)

// Market keys published by the odds provider.
const (
	MarketMoneyline = "h2h"
	MarketSpreads   = "spreads"
	MarketTotals    = "totals"
)

const (
	OutcomeOver  = "Over"
	OutcomeUnder = "Under"
)

// Game is one scheduled NFL matchup with the bookmaker quotes captured for it.
type Game struct {
	Season       int
	Week         int
	AwayTeam     string
	HomeTeam     string
	CommenceTime time.Time
	Bookmakers   Bookmakers
	UpdatedAt    time.Time
}

func (g Game) Validate() error {
	if g.Season <= 0 {
		return fmt.Errorf("game season must be > 0")
	}
	if g.Week <= 0 {
		return fmt.Errorf("game week must be > 0")
	}
	if strings.TrimSpace(g.AwayTeam) == "" || strings.TrimSpace(g.HomeTeam) == "" {
		return fmt.Errorf("game teams are required")
	}
	return nil
}

// Matchup renders the "{away} @ {home}" label used across picks and results.
func (g Game) Matchup() string {
	return Matchup(g.AwayTeam, g.HomeTeam)
}

func (g Game) Key() string {
	return Key(g.Season, g.Week, g.AwayTeam, g.HomeTeam)
}

// Quote returns the quote published by the bookmaker with the given key.
func (g Game) Quote(bookmakerKey string) (Bookmaker, bool) {
	for _, item := range g.Bookmakers {
		if item.Key == bookmakerKey {
			return item, true
		}
	}
	return Bookmaker{}, false
}

func (g Game) HasOdds() bool {
	return len(g.Bookmakers) > 0
}

func Matchup(away, home string) string {
	return away + " @ " + home
}

func Key(season, week int, away, home string) string {
	return fmt.Sprintf("%d:%d:%s:%s", season, week, away, home)
}

type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update,omitempty"`
	Markets    []Market `json:"markets"`
}

func (b Bookmaker) Market(key string) (Market, bool) {
	for _, item := range b.Markets {
		if item.Key == key {
			return item, true
		}
	}
	return Market{}, false
}

type Market struct {
	Key        string    `json:"key"`
	LastUpdate string    `json:"last_update,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}

type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

func (o Outcome) PointValue() (float64, bool) {
	if o.Point == nil {
		return 0, false
	}
	return *o.Point, true
}
