package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/weeklock"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type weekLockTableModel struct {
	ID       int64     `db:"id"`
	Season   int       `db:"season"`
	Week     int       `db:"week"`
	LockedBy string    `db:"locked_by"`
	LockedAt time.Time `db:"locked_at"`
}

type weekLockInsertModel struct {
	Season   int       `db:"season"`
	Week     int       `db:"week"`
	LockedBy string    `db:"locked_by"`
	LockedAt time.Time `db:"locked_at"`
}

type WeekLockRepository struct {
	db *sqlx.DB
}

func NewWeekLockRepository(db *sqlx.DB) *WeekLockRepository {
	return &WeekLockRepository{db: db}
}

func (r *WeekLockRepository) Get(ctx context.Context, season, week int) (weeklock.Lock, bool, error) {
	query, args, err := qb.Select("id", "season", "week", "locked_by", "locked_at").From("week_locks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		ToSQL()
	if err != nil {
		return weeklock.Lock{}, false, fmt.Errorf("build get week lock query: %w", err)
	}

	var row weekLockTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return weeklock.Lock{}, false, nil
		}
		return weeklock.Lock{}, false, fmt.Errorf("get week lock: %w", err)
	}
	return weeklock.Lock{
		Season:   row.Season,
		Week:     row.Week,
		LockedBy: row.LockedBy,
		LockedAt: row.LockedAt,
	}, true, nil
}

func (r *WeekLockRepository) Create(ctx context.Context, lock weeklock.Lock) error {
	if err := lock.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("week_locks", weekLockInsertModel{
		Season:   lock.Season,
		Week:     lock.Week,
		LockedBy: lock.LockedBy,
		LockedAt: lock.LockedAt,
	}, nil)
	if err != nil {
		return fmt.Errorf("build create week lock query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return weeklock.ErrAlreadyLocked
		}
		return fmt.Errorf("create week lock: %w", err)
	}
	return nil
}

func (r *WeekLockRepository) Delete(ctx context.Context, season, week int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM week_locks WHERE season = $1 AND week = $2`, season, week)
	if err != nil {
		return false, fmt.Errorf("delete week lock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted week lock rows: %w", err)
	}
	return affected > 0, nil
}
