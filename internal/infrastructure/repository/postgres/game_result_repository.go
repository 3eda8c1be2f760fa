package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/gameresult"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type GameResultRepository struct {
	db *sqlx.DB
}

var gameResultSelectColumns = []string{
	"id",
	"season",
	"week",
	"away_team",
	"home_team",
	"home_score",
	"away_score",
	"final",
	"spread",
	"total",
	"moneyline_winner",
	"spread_winner",
	"moneyline_push",
	"spread_push",
	"total_result",
	"last_updated",
}

func NewGameResultRepository(db *sqlx.DB) *GameResultRepository {
	return &GameResultRepository{db: db}
}

var gameResultConflict = qb.OnConflict("season", "week", "away_team", "home_team").
	DoUpdate(
		"home_score",
		"away_score",
		"final",
		"spread",
		"total",
		"moneyline_winner",
		"spread_winner",
		"moneyline_push",
		"spread_push",
		"total_result",
		"last_updated",
	)

func (r *GameResultRepository) ListByWeek(ctx context.Context, season, week int) ([]gameresult.GameResult, error) {
	query, args, err := qb.Select(gameResultSelectColumns...).From("game_results").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game results query: %w", err)
	}

	var rows []gameResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game results: %w", err)
	}

	out := make([]gameresult.GameResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameresult.GameResult{
			Season:          row.Season,
			Week:            row.Week,
			AwayTeam:        row.AwayTeam,
			HomeTeam:        row.HomeTeam,
			HomeScore:       intFromNull(row.HomeScore),
			AwayScore:       intFromNull(row.AwayScore),
			Final:           row.Final,
			Spread:          floatFromNull(row.Spread),
			Total:           floatFromNull(row.Total),
			MoneylineWinner: row.MoneylineWinner.String,
			SpreadWinner:    row.SpreadWinner.String,
			MoneylinePush:   row.MoneylinePush,
			SpreadPush:      row.SpreadPush,
			TotalResult:     gameresult.TotalResult(row.TotalResult.String),
			LastUpdated:     row.LastUpdated,
		})
	}
	return out, nil
}

func (r *GameResultRepository) Upsert(ctx context.Context, items []gameresult.GameResult) error {
	if len(items) == 0 {
		return nil
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return err
			}
			insertModel := gameResultInsertModel{
				Season:          item.Season,
				Week:            item.Week,
				AwayTeam:        item.AwayTeam,
				HomeTeam:        item.HomeTeam,
				HomeScore:       nullInt(item.HomeScore),
				AwayScore:       nullInt(item.AwayScore),
				Final:           item.Final,
				Spread:          nullFloat(item.Spread),
				Total:           nullFloat(item.Total),
				MoneylineWinner: nullString(item.MoneylineWinner),
				SpreadWinner:    nullString(item.SpreadWinner),
				MoneylinePush:   item.MoneylinePush,
				SpreadPush:      item.SpreadPush,
				TotalResult:     nullString(string(item.TotalResult)),
				LastUpdated:     item.LastUpdated,
			}
			query, args, err := qb.InsertModel("game_results", insertModel, gameResultConflict)
			if err != nil {
				return fmt.Errorf("build upsert game result query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert game result %s: %w", item.Matchup(), err)
			}
		}
		return nil
	})
}
