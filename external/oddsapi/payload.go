package oddsapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
)

type oddsEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	CommenceTime string          `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   json.RawMessage `json:"bookmakers"`
}

// toGame maps the event to a game. A malformed quote list keeps the game with
// no quotes and is reported through quoteErr.
func (e oddsEvent) toGame() (g game.Game, ok bool, quoteErr error) {
	home := strings.TrimSpace(e.HomeTeam)
	away := strings.TrimSpace(e.AwayTeam)
	if home == "" || away == "" {
		return game.Game{}, false, nil
	}
	bookmakers, quoteErr := game.DecodeBookmakers(e.Bookmakers)
	if quoteErr != nil {
		bookmakers = game.Bookmakers{}
	}
	return game.Game{
		AwayTeam:     away,
		HomeTeam:     home,
		CommenceTime: parseProviderTime(e.CommenceTime),
		Bookmakers:   bookmakers,
	}, true, quoteErr
}

type scoreEvent struct {
	ID           string      `json:"id"`
	CommenceTime string      `json:"commence_time"`
	Completed    bool        `json:"completed"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Scores       []teamScore `json:"scores"`
	LastUpdate   *string     `json:"last_update"`
}

type teamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

func (e scoreEvent) toScore() (gameresult.Score, error) {
	home := strings.TrimSpace(e.HomeTeam)
	away := strings.TrimSpace(e.AwayTeam)
	if home == "" || away == "" {
		return gameresult.Score{}, fmt.Errorf("score event %q has no teams", e.ID)
	}

	out := gameresult.Score{
		AwayTeam:     away,
		HomeTeam:     home,
		CommenceTime: parseProviderTime(e.CommenceTime),
		Completed:    e.Completed,
	}
	for _, item := range e.Scores {
		value, ok, err := parseScore(item.Score)
		if err != nil {
			return gameresult.Score{}, fmt.Errorf("score for %q: %w", item.Name, err)
		}
		if !ok {
			continue
		}
		switch strings.TrimSpace(item.Name) {
		case home:
			out.HomeScore = &value
		case away:
			out.AwayScore = &value
		}
	}
	return out, nil
}

func parseScore(raw string) (int, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("parse score %q: %w", raw, err)
	}
	return value, true, nil
}

func parseProviderTime(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, providerTimeLayout} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
