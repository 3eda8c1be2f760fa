package picksapi

import (
	"encoding/json"
	"fmt"

	"github.com/magentamen/picks/internal/domain/game"
)

// Sheet maps player -> category -> picked value.
type Sheet map[string]map[string]string

// ResultSheet maps player -> category -> pick and outcome.
type ResultSheet map[string]map[string]PickOutcome

type PickOutcome struct {
	Pick    string `json:"pick"`
	Outcome string `json:"outcome"`
}

// Game is one row of /api/games. Bookmakers is filled from RawBookmakers
// after decoding so a bad quote list only empties that game.
type Game struct {
	HomeTeam      string          `json:"home_team"`
	AwayTeam      string          `json:"away_team"`
	CommenceTime  string          `json:"commence_time"`
	RawBookmakers json.RawMessage `json:"bookmakers"`
	Bookmakers    game.Bookmakers `json:"-"`
}

func (g Game) Matchup() string {
	return game.Matchup(g.AwayTeam, g.HomeTeam)
}

type Choice struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Taken   bool   `json:"taken"`
	TakenBy string `json:"taken_by,omitempty"`
}

type CategoryOptions struct {
	Category string   `json:"category"`
	Fallback bool     `json:"fallback"`
	Choices  []Choice `json:"choices"`
}

type WeekOptions struct {
	Week       int               `json:"week"`
	Player     string            `json:"player,omitempty"`
	Categories []CategoryOptions `json:"categories"`
}

type BoardEntry struct {
	Player   string `json:"player"`
	Category string `json:"category"`
	Pick     string `json:"pick"`
	Live     string `json:"live"`
	Stored   string `json:"stored"`
}

type WeekBoard struct {
	Week       int          `json:"week"`
	FinalGames int          `json:"final_games"`
	Entries    []BoardEntry `json:"entries"`
}

type GameResult struct {
	Game            string   `json:"game"`
	HomeTeam        string   `json:"home_team"`
	AwayTeam        string   `json:"away_team"`
	HomeScore       *int     `json:"home_score"`
	AwayScore       *int     `json:"away_score"`
	Final           bool     `json:"final"`
	Spread          *float64 `json:"spread"`
	Total           *float64 `json:"total"`
	MoneylineWinner *string  `json:"moneyline_winner"`
	SpreadWinner    *string  `json:"spread_winner"`
	TotalResult     *string  `json:"total_result"`
	LastUpdated     *string  `json:"last_updated"`
}

type Standing struct {
	Player      string  `json:"player"`
	TotalPoints int     `json:"total_points"`
	Record      string  `json:"record"`
	WinPct      float64 `json:"win_pct"`
	Last3Points int     `json:"last3_points"`
	Last3Record string  `json:"last3_record"`
	Last5Points int     `json:"last5_points"`
	Last5Record string  `json:"last5_record"`
}

type Starter struct {
	Name string `json:"name"`
	Pos  string `json:"pos"`
	Team string `json:"team"`
}

type LockStatus struct {
	Locked   bool   `json:"locked"`
	LockedAt string `json:"locked_at,omitempty"`
	LockedBy string `json:"locked_by,omitempty"`
}

type PickRequest struct {
	Week     int    `json:"week"`
	Player   string `json:"player"`
	Category string `json:"category"`
	Value    string `json:"value"`
}

type OutcomeRequest struct {
	Week     int    `json:"week"`
	Player   string `json:"player"`
	Category string `json:"category"`
	Outcome  string `json:"outcome"`
}

// Status is the generic write acknowledgement. Endpoints fill only the
// counters they report.
type Status struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	UpdatedCount   int    `json:"updated_count"`
	GamesUpdated   int    `json:"games_updated"`
	PicksUpdated   int    `json:"picks_updated"`
	ResultsUpdated int    `json:"results_updated"`
	LockedAt       string `json:"locked_at"`
}

// APIError is a non-2xx reply from the picks service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("picks api status=%d: %s", e.StatusCode, e.Message)
}
