package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/magentamen/picks/internal/domain/participant"
)

type ParticipantRepository struct {
	mu     sync.RWMutex
	byName map[string]participant.Participant
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{byName: make(map[string]participant.Participant)}
}

func (r *ParticipantRepository) List(_ context.Context) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participant.Participant, 0, len(r.byName))
	for _, item := range r.byName {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt) ||
			(out[i].CreatedAt.Equal(out[j].CreatedAt) && out[i].Name < out[j].Name)
	})
	return out, nil
}

func (r *ParticipantRepository) GetByName(_ context.Context, name string) (participant.Participant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byName[name]
	return item, ok, nil
}

func (r *ParticipantRepository) Create(_ context.Context, item participant.Participant) error {
	if err := item.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[item.Name]; exists {
		return fmt.Errorf("participant %q already exists", item.Name)
	}
	r.byName[item.Name] = item
	return nil
}
