package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/participant"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type participantTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type participantInsertModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) List(ctx context.Context) ([]participant.Participant, error) {
	query, args, err := qb.Select("id", "public_id", "name", "created_at").From("participants").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participant.Participant{ID: row.PublicID, Name: row.Name, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *ParticipantRepository) GetByName(ctx context.Context, name string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("id", "public_id", "name", "created_at").From("participants").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get participant: %w", err)
	}
	return participant.Participant{ID: row.PublicID, Name: row.Name, CreatedAt: row.CreatedAt}, true, nil
}

// Create inserts a participant; a concurrent insert of the same name is absorbed.
func (r *ParticipantRepository) Create(ctx context.Context, item participant.Participant) error {
	if err := item.Validate(); err != nil {
		return err
	}

	insertModel := participantInsertModel{
		PublicID:  item.ID,
		Name:      item.Name,
		CreatedAt: item.CreatedAt,
	}
	query, args, err := qb.InsertModel("participants", insertModel, qb.OnConflict("name").DoNothing())
	if err != nil {
		return fmt.Errorf("build create participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	return nil
}
