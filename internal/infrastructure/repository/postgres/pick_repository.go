package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/pick"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

var pickSelectColumns = []string{
	"id",
	"public_id",
	"season",
	"week",
	"player_name",
	"category",
	"value",
	"updated_at",
}

var pickConflict = qb.OnConflict("season", "week", "player_name", "category").
	DoUpdate("value", "updated_at").
	Returning("public_id")

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListByWeek(ctx context.Context, season, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickSelectColumns...).From("picks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("player_name", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by week query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by week: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) Get(ctx context.Context, season, week int, player string, category pick.Category) (pick.Pick, bool, error) {
	query, args, err := qb.Select(pickSelectColumns...).From("picks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.Eq("player_name", player),
			qb.Eq("category", string(category)),
		).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}
	return pickFromRow(row), true, nil
}

func (r *PickRepository) FindHolder(ctx context.Context, season, week int, category pick.Category, value, excludePlayer string) (pick.Pick, bool, error) {
	query, args, err := qb.Select(pickSelectColumns...).From("picks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.Eq("category", string(category)),
			qb.Eq("value", value),
			qb.NotEq("player_name", excludePlayer),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build find pick holder query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("find pick holder: %w", err)
	}
	return pickFromRow(row), true, nil
}

func (r *PickRepository) Upsert(ctx context.Context, item pick.Pick) (pick.Pick, error) {
	if err := item.Validate(); err != nil {
		return pick.Pick{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	insertModel := pickInsertModel{
		PublicID:  item.ID,
		Season:    item.Season,
		Week:      item.Week,
		Player:    item.Player,
		Category:  string(item.Category),
		Value:     item.Value,
		UpdatedAt: item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("picks", insertModel, pickConflict)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("build upsert pick query: %w", err)
	}

	var publicID string
	if err := r.db.GetContext(ctx, &publicID, query, args...); err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick: %w", err)
	}
	item.ID = publicID
	return item, nil
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:        row.PublicID,
		Season:    row.Season,
		Week:      row.Week,
		Player:    row.Player,
		Category:  pick.Category(row.Category),
		Value:     row.Value,
		UpdatedAt: row.UpdatedAt,
	}
}
