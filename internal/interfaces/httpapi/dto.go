package httpapi

import (
	"time"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/player"
	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/domain/weeklock"
	"github.com/magentamen/picks/internal/usecase"
)

type weekRequest struct {
	Week weekValue `json:"week"`
}

type savePickRequest struct {
	Week     weekValue `json:"week"`
	Player   string    `json:"player" validate:"max=64"`
	Category string    `json:"category" validate:"max=32"`
	Value    string    `json:"value" validate:"max=200"`
}

type saveResultRequest struct {
	Week     weekValue `json:"week"`
	Player   string    `json:"player" validate:"max=64"`
	Category string    `json:"category" validate:"max=32"`
	Outcome  string    `json:"outcome" validate:"max=16"`
}

type lockWeekRequest struct {
	Week     weekValue `json:"week"`
	LockedBy string    `json:"locked_by" validate:"max=64"`
}

type gameDTO struct {
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	CommenceTime string          `json:"commence_time"`
	Bookmakers   game.Bookmakers `json:"bookmakers"`
}

type refreshGamesDTO struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	UpdatedCount int    `json:"updated_count"`
}

type choiceDTO struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Taken   bool   `json:"taken"`
	TakenBy string `json:"taken_by,omitempty"`
}

type categoryOptionsDTO struct {
	Category string      `json:"category"`
	Fallback bool        `json:"fallback"`
	Choices  []choiceDTO `json:"choices"`
}

type weekOptionsDTO struct {
	Week       int                  `json:"week"`
	Player     string               `json:"player,omitempty"`
	Categories []categoryOptionsDTO `json:"categories"`
}

type boardEntryDTO struct {
	Player   string `json:"player"`
	Category string `json:"category"`
	Pick     string `json:"pick"`
	Live     string `json:"live"`
	Stored   string `json:"stored"`
}

type weekBoardDTO struct {
	Week       int             `json:"week"`
	FinalGames int             `json:"final_games"`
	Entries    []boardEntryDTO `json:"entries"`
}

type gameResultDTO struct {
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

type refreshResultsDTO struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	GamesUpdated int    `json:"games_updated"`
	PicksUpdated int    `json:"picks_updated"`
}

type calculateDTO struct {
	Success        bool   `json:"success"`
	ResultsUpdated int    `json:"results_updated"`
	Message        string `json:"message"`
}

type pickOutcomeDTO struct {
	Pick    string `json:"pick"`
	Outcome string `json:"outcome"`
}

type standingDTO struct {
	Player      string  `json:"player"`
	TotalPoints int     `json:"total_points"`
	Record      string  `json:"record"`
	WinPct      float64 `json:"win_pct"`
	Last3Points int     `json:"last3_points"`
	Last3Record string  `json:"last3_record"`
	Last5Points int     `json:"last5_points"`
	Last5Record string  `json:"last5_record"`
}

type starterDTO struct {
	Name string `json:"name"`
	Pos  string `json:"pos"`
	Team string `json:"team"`
}

type lockStatusDTO struct {
	Locked   bool   `json:"locked"`
	LockedAt string `json:"locked_at,omitempty"`
	LockedBy string `json:"locked_by,omitempty"`
}

type lockedDTO struct {
	Success  bool   `json:"success"`
	LockedAt string `json:"locked_at"`
}

func gameToDTO(item game.Game) gameDTO {
	bookmakers := item.Bookmakers
	if bookmakers == nil {
		bookmakers = game.Bookmakers{}
	}
	return gameDTO{
		HomeTeam:     item.HomeTeam,
		AwayTeam:     item.AwayTeam,
		CommenceTime: item.CommenceTime.UTC().Format(time.RFC3339),
		Bookmakers:   bookmakers,
	}
}

func weekOptionsToDTO(item usecase.WeekOptions) weekOptionsDTO {
	out := weekOptionsDTO{
		Week:       item.Week,
		Player:     item.Player,
		Categories: make([]categoryOptionsDTO, 0, len(item.Categories)),
	}
	for _, category := range item.Categories {
		choices := make([]choiceDTO, 0, len(category.Choices))
		for _, choice := range category.Choices {
			choices = append(choices, choiceDTO{
				Label:   choice.Label,
				Value:   choice.Value,
				Taken:   choice.Taken,
				TakenBy: choice.TakenBy,
			})
		}
		out.Categories = append(out.Categories, categoryOptionsDTO{
			Category: string(category.Category),
			Fallback: category.Fallback,
			Choices:  choices,
		})
	}
	return out
}

func weekBoardToDTO(item usecase.WeekBoard) weekBoardDTO {
	out := weekBoardDTO{
		Week:       item.Week,
		FinalGames: item.FinalGames,
		Entries:    make([]boardEntryDTO, 0, len(item.Entries)),
	}
	for _, entry := range item.Entries {
		out.Entries = append(out.Entries, boardEntryDTO{
			Player:   entry.Player,
			Category: string(entry.Category),
			Pick:     entry.Pick,
			Live:     string(entry.Live),
			Stored:   string(entry.Stored),
		})
	}
	return out
}

func gameResultToDTO(item gameresult.GameResult) gameResultDTO {
	out := gameResultDTO{
		Game:            item.Matchup(),
		HomeTeam:        item.HomeTeam,
		AwayTeam:        item.AwayTeam,
		HomeScore:       item.HomeScore,
		AwayScore:       item.AwayScore,
		Final:           item.Final,
		Spread:          item.Spread,
		Total:           item.Total,
		MoneylineWinner: optionalString(item.MoneylineWinner),
		SpreadWinner:    optionalString(item.SpreadWinner),
		TotalResult:     optionalString(string(item.TotalResult)),
	}
	if !item.LastUpdated.IsZero() {
		out.LastUpdated = optionalString(item.LastUpdated.UTC().Format(time.RFC3339))
	}
	return out
}

func standingToDTO(item scoring.Standing) standingDTO {
	return standingDTO{
		Player:      item.Player,
		TotalPoints: item.TotalPoints,
		Record:      item.Record(),
		WinPct:      item.WinPct,
		Last3Points: item.Last3.Points,
		Last3Record: item.Last3.Record(),
		Last5Points: item.Last5.Points,
		Last5Record: item.Last5.Record(),
	}
}

func starterToDTO(item player.Player) starterDTO {
	return starterDTO{Name: item.Name, Pos: string(item.Position), Team: item.Team}
}

func lockStatusToDTO(item weeklock.Lock, locked bool) lockStatusDTO {
	if !locked {
		return lockStatusDTO{Locked: false}
	}
	return lockStatusDTO{
		Locked:   true,
		LockedAt: item.LockedAt.UTC().Format(time.RFC3339),
		LockedBy: item.LockedBy,
	}
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
