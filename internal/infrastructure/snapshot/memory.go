package snapshot

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/magentamen/picks/internal/domain/resolution"
)

// MemoryStore keeps the current snapshot per week. Writers publish a new map
// with a single pointer swap so readers never see a partially updated week.
type MemoryStore struct {
	mu      sync.Mutex
	current atomic.Pointer[map[string]resolution.Snapshot]
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{}
	empty := map[string]resolution.Snapshot{}
	s.current.Store(&empty)
	return s
}

func (s *MemoryStore) Load(_ context.Context, season, week int) (resolution.Snapshot, bool, error) {
	snap, ok := (*s.current.Load())[weekKey(season, week)]
	return snap, ok, nil
}

func (s *MemoryStore) Store(_ context.Context, snap resolution.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := *s.current.Load()
	next := make(map[string]resolution.Snapshot, len(prev)+1)
	for key, value := range prev {
		next[key] = value
	}
	next[weekKey(snap.Season(), snap.Week())] = snap
	s.current.Store(&next)
	return nil
}

func weekKey(season, week int) string {
	return strconv.Itoa(season) + ":" + strconv.Itoa(week)
}
