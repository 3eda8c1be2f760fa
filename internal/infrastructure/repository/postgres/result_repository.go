package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/scoring"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type resultTableModel struct {
	ID        int64          `db:"id"`
	Season    int            `db:"season"`
	Week      int            `db:"week"`
	Player    string         `db:"player_name"`
	Category  string         `db:"category"`
	Outcome   string         `db:"outcome"`
	PickID    sql.NullString `db:"pick_public_id"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type resultInsertModel struct {
	Season    int            `db:"season"`
	Week      int            `db:"week"`
	Player    string         `db:"player_name"`
	Category  string         `db:"category"`
	Outcome   string         `db:"outcome"`
	PickID    sql.NullString `db:"pick_public_id"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// ResultRepository stores settled pick outcomes.
type ResultRepository struct {
	db *sqlx.DB
}

var resultSelectColumns = []string{
	"id",
	"season",
	"week",
	"player_name",
	"category",
	"outcome",
	"pick_public_id",
	"updated_at",
}

var resultConflict = qb.OnConflict("season", "week", "player_name", "category").
	DoUpdate("outcome", "pick_public_id", "updated_at")

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListByWeek(ctx context.Context, season, week int) ([]scoring.Result, error) {
	query, args, err := qb.Select(resultSelectColumns...).From("pick_results").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("player_name", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results by week query: %w", err)
	}
	return r.selectResults(ctx, query, args)
}

func (r *ResultRepository) ListBySeason(ctx context.Context, season int) ([]scoring.Result, error) {
	query, args, err := qb.Select(resultSelectColumns...).From("pick_results").
		Where(qb.Eq("season", season)).
		OrderBy("week", "player_name", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results by season query: %w", err)
	}
	return r.selectResults(ctx, query, args)
}

func (r *ResultRepository) Upsert(ctx context.Context, item scoring.Result) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("pick_results", resultInsertModel{
		Season:    item.Season,
		Week:      item.Week,
		Player:    item.Player,
		Category:  string(item.Category),
		Outcome:   string(item.Outcome),
		PickID:    nullString(item.PickID),
		UpdatedAt: item.UpdatedAt,
	}, resultConflict)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

func (r *ResultRepository) selectResults(ctx context.Context, query string, args []any) ([]scoring.Result, error) {
	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}

	out := make([]scoring.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.Result{
			Season:    row.Season,
			Week:      row.Week,
			Player:    row.Player,
			Category:  pick.Category(row.Category),
			Outcome:   scoring.Outcome(row.Outcome),
			PickID:    row.PickID.String,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}
