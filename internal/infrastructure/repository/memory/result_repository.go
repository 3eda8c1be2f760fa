package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magentamen/picks/internal/domain/scoring"
)

type ResultRepository struct {
	mu      sync.RWMutex
	results map[string]scoring.Result
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{results: make(map[string]scoring.Result)}
}

func (r *ResultRepository) ListByWeek(_ context.Context, season, week int) ([]scoring.Result, error) {
	return r.list(func(item scoring.Result) bool {
		return item.Season == season && item.Week == week
	}), nil
}

func (r *ResultRepository) ListBySeason(_ context.Context, season int) ([]scoring.Result, error) {
	return r.list(func(item scoring.Result) bool {
		return item.Season == season
	}), nil
}

func (r *ResultRepository) Upsert(_ context.Context, item scoring.Result) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%d:%d:%s:%s", item.Season, item.Week, item.Player, item.Category)
	r.results[key] = item
	return nil
}

func (r *ResultRepository) list(keep func(scoring.Result) bool) []scoring.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Result, 0)
	for _, item := range r.results {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		if out[i].Player != out[j].Player {
			return out[i].Player < out[j].Player
		}
		return out[i].Category < out[j].Category
	})
	return out
}
