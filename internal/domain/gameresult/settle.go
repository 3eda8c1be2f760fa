package gameresult

import (
	"time"

	"github.com/magentamen/picks/internal/domain/game"
)

// Score is a provider score line for one game.
type Score struct {
	AwayTeam     string
	HomeTeam     string
	CommenceTime time.Time
	Completed    bool
	HomeScore    *int
	AwayScore    *int
}

// Lines are the posted numbers a game is graded against.
type Lines struct {
	HomeSpread *float64
	Total      *float64
}

// LinesFromQuote reads the home spread and the posted total from a bookmaker quote.
func LinesFromQuote(quote game.Bookmaker, homeTeam string) Lines {
	var lines Lines
	if market, ok := quote.Market(game.MarketSpreads); ok {
		for _, outcome := range market.Outcomes {
			if outcome.Name == homeTeam && outcome.Point != nil {
				point := *outcome.Point
				lines.HomeSpread = &point
				break
			}
		}
	}
	if market, ok := quote.Market(game.MarketTotals); ok {
		for _, outcome := range market.Outcomes {
			if outcome.Name == game.OutcomeOver && outcome.Point != nil {
				point := *outcome.Point
				lines.Total = &point
				break
			}
		}
	}
	return lines
}

// Settle grades a completed score against the posted lines. It returns false
// when the game is not complete or a score is missing.
func Settle(season, week int, score Score, lines Lines, now time.Time) (GameResult, bool) {
	if !score.Completed || score.HomeScore == nil || score.AwayScore == nil {
		return GameResult{}, false
	}

	home := *score.HomeScore
	away := *score.AwayScore
	result := GameResult{
		Season:      season,
		Week:        week,
		AwayTeam:    score.AwayTeam,
		HomeTeam:    score.HomeTeam,
		HomeScore:   intPtr(home),
		AwayScore:   intPtr(away),
		Final:       true,
		Spread:      lines.HomeSpread,
		Total:       lines.Total,
		LastUpdated: now,
	}

	switch {
	case home > away:
		result.MoneylineWinner = score.HomeTeam
	case away > home:
		result.MoneylineWinner = score.AwayTeam
	default:
		result.MoneylinePush = true
	}

	if lines.HomeSpread != nil {
		adjusted := float64(home) + *lines.HomeSpread
		switch {
		case adjusted > float64(away):
			result.SpreadWinner = score.HomeTeam
		case float64(away) > adjusted:
			result.SpreadWinner = score.AwayTeam
		default:
			result.SpreadPush = true
		}
	}

	if lines.Total != nil {
		points := float64(home + away)
		switch {
		case points > *lines.Total:
			result.TotalResult = TotalOver
		case points < *lines.Total:
			result.TotalResult = TotalUnder
		default:
			result.TotalResult = TotalPush
		}
	}

	return result, true
}

func intPtr(v int) *int {
	return &v
}
