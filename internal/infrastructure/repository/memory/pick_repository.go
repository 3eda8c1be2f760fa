package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/magentamen/picks/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	picks map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{picks: make(map[string]pick.Pick)}
}

func (r *PickRepository) ListByWeek(_ context.Context, season, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picks {
		if item.Season == season && item.Week == week {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Player != out[j].Player {
			return out[i].Player < out[j].Player
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (r *PickRepository) Get(_ context.Context, season, week int, player string, category pick.Category) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.picks[pickKey(season, week, player, category)]
	return item, ok, nil
}

func (r *PickRepository) FindHolder(_ context.Context, season, week int, category pick.Category, value, excludePlayer string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.picks {
		if item.Season != season || item.Week != week || item.Category != category {
			continue
		}
		if item.Value == value && item.Player != excludePlayer {
			return item, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *PickRepository) Upsert(_ context.Context, item pick.Pick) (pick.Pick, error) {
	if err := item.Validate(); err != nil {
		return pick.Pick{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := pickKey(item.Season, item.Week, item.Player, item.Category)
	if existing, ok := r.picks[key]; ok {
		item.ID = existing.ID
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.picks[key] = item
	return item, nil
}

func pickKey(season, week int, player string, category pick.Category) string {
	return fmt.Sprintf("%d:%d:%s:%s", season, week, player, category)
}
