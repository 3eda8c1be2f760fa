package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/magentamen/picks/internal/domain/gameresult"
)

type GameResultRepository struct {
	mu      sync.RWMutex
	results map[string]gameresult.GameResult
}

func NewGameResultRepository() *GameResultRepository {
	return &GameResultRepository{results: make(map[string]gameresult.GameResult)}
}

func (r *GameResultRepository) ListByWeek(_ context.Context, season, week int) ([]gameresult.GameResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameresult.GameResult, 0)
	for _, item := range r.results {
		if item.Season == season && item.Week == week {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Matchup() < out[j].Matchup()
	})
	return out, nil
}

func (r *GameResultRepository) Upsert(_ context.Context, items []gameresult.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		r.results[item.Key()] = item
	}
	return nil
}
