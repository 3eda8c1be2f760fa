package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/platform/logging"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type GameRepository struct {
	db     *sqlx.DB
	logger *logging.Logger
}

var gameSelectColumns = []string{
	"id",
	"season",
	"week",
	"away_team",
	"home_team",
	"commence_time",
	"bookmakers",
	"updated_at",
}

func NewGameRepository(db *sqlx.DB, logger *logging.Logger) *GameRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameRepository{db: db, logger: logger}
}

var gameConflict = qb.OnConflict("season", "week", "away_team", "home_team").
	DoUpdate("commence_time", "bookmakers", "updated_at")

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("commence_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by week query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by week: %w", err)
	}

	return r.gamesFromRows(ctx, rows), nil
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("season", season)).
		OrderBy("week", "commence_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by season query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by season: %w", err)
	}

	return r.gamesFromRows(ctx, rows), nil
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game) error {
	if len(games) == 0 {
		return nil
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, item := range games {
			if err := item.Validate(); err != nil {
				return err
			}
			encoded, err := game.EncodeBookmakers(item.Bookmakers)
			if err != nil {
				return err
			}
			insertModel := gameInsertModel{
				Season:       item.Season,
				Week:         item.Week,
				AwayTeam:     item.AwayTeam,
				HomeTeam:     item.HomeTeam,
				CommenceTime: item.CommenceTime,
				Bookmakers:   string(encoded),
				UpdatedAt:    item.UpdatedAt,
			}
			query, args, err := qb.InsertModel("games", insertModel, gameConflict)
			if err != nil {
				return fmt.Errorf("build upsert game query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert game %s: %w", item.Matchup(), err)
			}
		}
		return nil
	})
}

func (r *GameRepository) gamesFromRows(ctx context.Context, rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		bookmakers, err := game.DecodeBookmakers(row.Bookmakers)
		if err != nil {
			r.logger.WarnContext(ctx, "discard malformed stored odds",
				"game_id", row.ID,
				"matchup", game.Matchup(row.AwayTeam, row.HomeTeam),
				"error", err,
			)
		}
		out = append(out, game.Game{
			Season:       row.Season,
			Week:         row.Week,
			AwayTeam:     row.AwayTeam,
			HomeTeam:     row.HomeTeam,
			CommenceTime: row.CommenceTime,
			Bookmakers:   bookmakers,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return out
}
