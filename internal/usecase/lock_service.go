package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/domain/weeklock"
	"github.com/magentamen/picks/internal/platform/logging"
)

type LockService struct {
	locks    weeklock.Repository
	calendar season.Calendar
	logger   *logging.Logger
	now      func() time.Time
}

func NewLockService(locks weeklock.Repository, calendar season.Calendar, logger *logging.Logger) *LockService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LockService{
		locks:    locks,
		calendar: calendar,
		logger:   logger,
		now:      time.Now,
	}
}

// Lock freezes picks for week. An empty lockedBy defaults to Admin.
func (s *LockService) Lock(ctx context.Context, week int, lockedBy string) (weeklock.Lock, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.Lock")
	defer span.End()

	if week <= 0 {
		return weeklock.Lock{}, errMissingWeek
	}
	if !s.calendar.Contains(week) {
		return weeklock.Lock{}, errWeekOutOfRange
	}
	lockedBy = strings.TrimSpace(lockedBy)
	if lockedBy == "" {
		lockedBy = weeklock.DefaultLockedBy
	}

	_, exists, err := s.locks.Get(ctx, s.calendar.Season, week)
	if err != nil {
		return weeklock.Lock{}, fmt.Errorf("get week lock: %w", err)
	}
	if exists {
		return weeklock.Lock{}, errAlreadyLocked
	}

	lock := weeklock.Lock{
		Season:   s.calendar.Season,
		Week:     week,
		LockedBy: lockedBy,
		LockedAt: s.now().UTC(),
	}
	if err := s.locks.Create(ctx, lock); err != nil {
		if errors.Is(err, weeklock.ErrAlreadyLocked) {
			return weeklock.Lock{}, errAlreadyLocked
		}
		return weeklock.Lock{}, fmt.Errorf("create week lock: %w", err)
	}

	s.logger.InfoContext(ctx, "week locked", "week", week, "locked_by", lockedBy)
	return lock, nil
}

func (s *LockService) Unlock(ctx context.Context, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.Unlock")
	defer span.End()

	if week <= 0 {
		return userError(ErrInvalidInput, "Week is required")
	}

	deleted, err := s.locks.Delete(ctx, s.calendar.Season, week)
	if err != nil {
		return fmt.Errorf("delete week lock: %w", err)
	}
	if !deleted {
		return errNotLocked
	}

	s.logger.InfoContext(ctx, "week unlocked", "week", week)
	return nil
}

// Status reports the lock of week, if any.
func (s *LockService) Status(ctx context.Context, week int) (weeklock.Lock, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LockService.Status")
	defer span.End()

	if week <= 0 {
		return weeklock.Lock{}, false, errMissingWeek
	}

	lock, exists, err := s.locks.Get(ctx, s.calendar.Season, week)
	if err != nil {
		return weeklock.Lock{}, false, fmt.Errorf("get week lock: %w", err)
	}
	return lock, exists, nil
}
