package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/magentamen/picks/internal/domain/participant"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/domain/weeklock"
	"github.com/magentamen/picks/internal/platform/id"
	"github.com/magentamen/picks/internal/platform/logging"
)

type PickService struct {
	picks        pick.Repository
	participants participant.Repository
	locks        weeklock.Repository
	ids          id.Generator
	calendar     season.Calendar
	logger       *logging.Logger
	now          func() time.Time

	// saveMu serializes the taken check with the write.
	saveMu sync.Mutex
}

type SavePickInput struct {
	Week     int
	Player   string
	Category string
	Value    string
}

func NewPickService(
	picks pick.Repository,
	participants participant.Repository,
	locks weeklock.Repository,
	ids id.Generator,
	calendar season.Calendar,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &PickService{
		picks:        picks,
		participants: participants,
		locks:        locks,
		ids:          ids,
		calendar:     calendar,
		logger:       logger,
		now:          time.Now,
	}
}

// ListByWeek returns the week's picks as player -> category -> value.
func (s *PickService) ListByWeek(ctx context.Context, week int) (pick.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListByWeek")
	defer span.End()

	if week <= 0 {
		return nil, errMissingWeek
	}

	items, err := s.picks.ListByWeek(ctx, s.calendar.Season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks by week: %w", err)
	}
	return pick.SheetFrom(items), nil
}

// Save records a player's value for a category. The week must be unlocked
// and no other player may hold the same value.
func (s *PickService) Save(ctx context.Context, input SavePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Save")
	defer span.End()

	player := strings.TrimSpace(input.Player)
	value := strings.TrimSpace(input.Value)
	if input.Week <= 0 || player == "" || strings.TrimSpace(input.Category) == "" || value == "" {
		return pick.Pick{}, errMissingData
	}
	if !s.calendar.Contains(input.Week) {
		return pick.Pick{}, errWeekOutOfRange
	}
	category, err := pick.ParseCategory(input.Category)
	if err != nil {
		return pick.Pick{}, errInvalidCategory
	}
	seasonYear := s.calendar.Season

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	_, locked, err := s.locks.Get(ctx, seasonYear, input.Week)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get week lock: %w", err)
	}
	if locked {
		return pick.Pick{}, errWeekLocked
	}

	if err := s.ensureParticipant(ctx, player); err != nil {
		return pick.Pick{}, err
	}

	holder, taken, err := s.picks.FindHolder(ctx, seasonYear, input.Week, category, value, player)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("find pick holder: %w", err)
	}
	if taken {
		s.logger.InfoContext(ctx, "pick rejected, value taken",
			"week", input.Week,
			"player", player,
			"category", category,
			"holder", holder.Player,
		)
		return pick.Pick{}, errPickTaken
	}

	current, exists, err := s.picks.Get(ctx, seasonYear, input.Week, player, category)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get pick: %w", err)
	}
	item := pick.Pick{
		ID:        current.ID,
		Season:    seasonYear,
		Week:      input.Week,
		Player:    player,
		Category:  category,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}
	if !exists {
		item.ID, err = s.ids.NewID()
		if err != nil {
			return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
		}
	}

	saved, err := s.picks.Upsert(ctx, item)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick: %w", err)
	}

	s.logger.InfoContext(ctx, "pick saved",
		"week", saved.Week,
		"player", saved.Player,
		"category", saved.Category,
		"updated", exists,
	)
	return saved, nil
}

func (s *PickService) ensureParticipant(ctx context.Context, name string) error {
	_, exists, err := s.participants.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get participant: %w", err)
	}
	if exists {
		return nil
	}

	participantID, err := s.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate participant id: %w", err)
	}
	if err := s.participants.Create(ctx, participant.Participant{
		ID:        participantID,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	s.logger.InfoContext(ctx, "participant created", "player", name)
	return nil
}
