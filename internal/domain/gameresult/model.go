package gameresult

import (
	"fmt"
	"strings"
	"time"

	"github.com/magentamen/picks/internal/domain/game"
)

type TotalResult string

const (
	TotalNone  TotalResult = ""
	TotalOver  TotalResult = "over"
	TotalUnder TotalResult = "under"
	TotalPush  TotalResult = "push"
)

func ParseTotalResult(raw string) (TotalResult, error) {
	switch value := TotalResult(strings.ToLower(strings.TrimSpace(raw))); value {
	case TotalNone, TotalOver, TotalUnder, TotalPush:
		return value, nil
	default:
		return TotalNone, fmt.Errorf("invalid total result %q", raw)
	}
}

// GameResult is the settled state of one game. Push flags mark lines that
// landed exactly on the number.
type GameResult struct {
	Season          int
	Week            int
	AwayTeam        string
	HomeTeam        string
	HomeScore       *int
	AwayScore       *int
	Final           bool
	Spread          *float64
	Total           *float64
	MoneylineWinner string
	SpreadWinner    string
	MoneylinePush   bool
	SpreadPush      bool
	TotalResult     TotalResult
	LastUpdated     time.Time
}

func (r GameResult) Validate() error {
	if r.Season <= 0 || r.Week <= 0 {
		return fmt.Errorf("game result season and week must be > 0")
	}
	if strings.TrimSpace(r.AwayTeam) == "" || strings.TrimSpace(r.HomeTeam) == "" {
		return fmt.Errorf("game result teams are required")
	}
	if _, err := ParseTotalResult(string(r.TotalResult)); err != nil {
		return err
	}
	return nil
}

func (r GameResult) Matchup() string {
	return game.Matchup(r.AwayTeam, r.HomeTeam)
}

func (r GameResult) Key() string {
	return game.Key(r.Season, r.Week, r.AwayTeam, r.HomeTeam)
}

// Involves reports whether team played in this game.
func (r GameResult) Involves(team string) bool {
	return team != "" && (team == r.HomeTeam || team == r.AwayTeam)
}
