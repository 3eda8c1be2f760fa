package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/infrastructure/repository/memory"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

// BootstrapSeed loads the starter directory and pool participants into an
// empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM nfl_players`); err != nil {
		return fmt.Errorf("count starters for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, p := range memory.SeedPlayers() {
			query, args, err := qb.InsertModel("nfl_players", playerInsertModel{
				PublicID: p.ID,
				Name:     p.Name,
				Position: string(p.Position),
				Team:     p.Team,
				Active:   p.Active,
			}, qb.OnConflict("public_id").DoNothing())
			if err != nil {
				return fmt.Errorf("build seed starter %s query: %w", p.ID, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed starter %s: %w", p.ID, err)
			}
		}

		now := time.Now().UTC()
		for _, name := range memory.SeedParticipants() {
			query, args, err := qb.InsertModel("participants", participantInsertModel{
				PublicID:  uuid.NewString(),
				Name:      name,
				CreatedAt: now,
			}, qb.OnConflict("name").DoNothing())
			if err != nil {
				return fmt.Errorf("build seed participant %s query: %w", name, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("seed participant %s: %w", name, err)
			}
		}
		return nil
	})
}
