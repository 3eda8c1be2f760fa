package memory

import (
	"context"
	"sync"

	"github.com/magentamen/picks/internal/domain/weeklock"
)

type WeekLockRepository struct {
	mu    sync.RWMutex
	locks map[[2]int]weeklock.Lock
}

func NewWeekLockRepository() *WeekLockRepository {
	return &WeekLockRepository{locks: make(map[[2]int]weeklock.Lock)}
}

func (r *WeekLockRepository) Get(_ context.Context, season, week int) (weeklock.Lock, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.locks[[2]int{season, week}]
	return item, ok, nil
}

func (r *WeekLockRepository) Create(_ context.Context, lock weeklock.Lock) error {
	if err := lock.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]int{lock.Season, lock.Week}
	if _, exists := r.locks[key]; exists {
		return weeklock.ErrAlreadyLocked
	}
	r.locks[key] = lock
	return nil
}

func (r *WeekLockRepository) Delete(_ context.Context, season, week int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := [2]int{season, week}
	if _, exists := r.locks[key]; !exists {
		return false, nil
	}
	delete(r.locks, key)
	return true, nil
}
