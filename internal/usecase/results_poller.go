package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/platform/logging"
)

const defaultResultsPollInterval = 15 * time.Minute

// ResultsRefresher is the part of ResultService the poller drives.
type ResultsRefresher interface {
	RefreshGameResults(ctx context.Context, week int) (RefreshResultsSummary, error)
}

// PollerStatus describes the recent health of the poll loop.
type PollerStatus struct {
	ConsecutiveFailures int
	LastError           string
	LastWeek            int
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// ResultsPoller refreshes the current week's results on an interval.
type ResultsPoller struct {
	refresher ResultsRefresher
	calendar  season.Calendar
	interval  time.Duration
	clock     clockwork.Clock
	logger    *logging.Logger

	startMu sync.Mutex
	started bool
	stop    chan struct{}
	stopped chan struct{}

	statusMu sync.RWMutex
	status   PollerStatus
}

func NewResultsPoller(
	refresher ResultsRefresher,
	calendar season.Calendar,
	interval time.Duration,
	clock clockwork.Clock,
	logger *logging.Logger,
) *ResultsPoller {
	if interval <= 0 {
		interval = defaultResultsPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ResultsPoller{
		refresher: refresher,
		calendar:  calendar,
		interval:  interval,
		clock:     clock,
		logger:    logger.Named("results_poller"),
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start runs one refresh immediately, then one per interval until ctx ends
// or Stop is called. Calling Start twice is a no-op.
func (p *ResultsPoller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	ticker := p.clock.NewTicker(p.interval)
	go func() {
		defer close(p.stopped)
		defer ticker.Stop()

		p.logger.InfoContext(ctx, "results poller started", "interval", p.interval.String())
		p.pollOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				p.logger.Info("results poller stopped")
				return
			case <-p.stop:
				p.logger.Info("results poller stopped")
				return
			case <-ticker.Chan():
				p.pollOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for the in-flight refresh to finish.
func (p *ResultsPoller) Stop(ctx context.Context) error {
	p.startMu.Lock()
	started := p.started
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	p.startMu.Unlock()

	if !started {
		return nil
	}
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *ResultsPoller) Status() PollerStatus {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

func (p *ResultsPoller) pollOnce(ctx context.Context) {
	now := p.clock.Now()
	week := p.calendar.WeekAt(now)

	summary, err := p.refresher.RefreshGameResults(ctx, week)

	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = now
	p.status.LastWeek = week

	switch {
	case err == nil:
		p.status.ConsecutiveFailures = 0
		p.status.LastError = ""
		p.status.LastSuccess = now
		p.logger.InfoContext(ctx, "results poll refreshed week",
			"week", week,
			"games_updated", summary.GamesUpdated,
			"picks_updated", summary.PicksUpdated,
		)
	case errors.Is(err, ErrNoGameResults):
		// nothing completed yet this week
		p.status.ConsecutiveFailures = 0
		p.status.LastError = ""
		p.logger.DebugContext(ctx, "results poll found no completed games", "week", week)
	default:
		p.status.ConsecutiveFailures++
		p.status.LastError = err.Error()
		p.logger.WarnContext(ctx, "results poll failed",
			"week", week,
			"consecutive_failures", p.status.ConsecutiveFailures,
			"error", err,
		)
	}
}
