package memory

import (
	"context"
	"sync"

	"github.com/magentamen/picks/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	playersByTeam map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	playersByTeam := make(map[string][]player.Player)
	for _, p := range players {
		playersByTeam[p.Team] = append(playersByTeam[p.Team], p)
	}

	return &PlayerRepository{playersByTeam: playersByTeam}
}

func (r *PlayerRepository) ListActiveByTeams(_ context.Context, teams []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(teams)*4)
	for _, abbr := range player.NormalizeTeams(teams) {
		for _, p := range r.playersByTeam[abbr] {
			if !p.Active {
				continue
			}
			out = append(out, p)
		}
	}

	return out, nil
}
