package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/magentamen/picks/internal/domain/player"
	qb "github.com/magentamen/picks/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"position",
	"team",
	"active",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListActiveByTeams(ctx context.Context, teams []string) ([]player.Player, error) {
	teams = player.NormalizeTeams(teams)
	if len(teams) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("nfl_players").
		Where(
			qb.In("team", stringSliceToAny(teams)),
			qb.Eq("active", true),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select starters by teams query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select starters by teams: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:       row.PublicID,
			Name:     row.Name,
			Position: player.Position(row.Position),
			Team:     row.Team,
			Active:   row.Active,
		})
	}

	return out, nil
}
