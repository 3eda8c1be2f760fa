package season

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultSeason = 2025
	DefaultWeeks  = 18
)

var defaultWeek1Start = time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC)

// Calendar maps wall-clock time onto the weeks of one NFL regular season.
type Calendar struct {
	Season     int
	Week1Start time.Time
	Weeks      int
}

func Default() Calendar {
	return Calendar{
		Season:     DefaultSeason,
		Week1Start: defaultWeek1Start,
		Weeks:      DefaultWeeks,
	}
}

func (c Calendar) Validate() error {
	if c.Season <= 0 {
		return fmt.Errorf("season must be > 0")
	}
	if c.Week1Start.IsZero() {
		return fmt.Errorf("week 1 start is required")
	}
	if c.Weeks <= 0 {
		return fmt.Errorf("season weeks must be > 0")
	}
	return nil
}

// WeekAt returns the week containing t, clamped to [1, Weeks].
func (c Calendar) WeekAt(t time.Time) int {
	days := t.Sub(c.Week1Start).Hours() / 24
	week := int(floorDiv(days, 7)) + 1
	return c.clamp(week)
}

// Window returns the half-open range [start, end) covering week.
func (c Calendar) Window(week int) (time.Time, time.Time) {
	week = c.clamp(week)
	start := c.Week1Start.AddDate(0, 0, 7*(week-1))
	return start, start.AddDate(0, 0, 7)
}

func (c Calendar) Contains(week int) bool {
	return week >= 1 && week <= c.Weeks
}

func (c Calendar) clamp(week int) int {
	if week < 1 {
		return 1
	}
	if week > c.Weeks {
		return c.Weeks
	}
	return week
}

func floorDiv(v, d float64) float64 {
	q := v / d
	i := float64(int64(q))
	if q < 0 && i != q {
		i--
	}
	return i
}

// ParseSeasonWeek accepts a bare week number ("3") or a season-qualified one
// ("2025-3"). The season is zero for a bare week.
func ParseSeasonWeek(raw string) (int, int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, 0, fmt.Errorf("week is required")
	}

	seasonYear := 0
	if idx := strings.LastIndex(value, "-"); idx > 0 {
		parsed, err := strconv.Atoi(value[:idx])
		if err != nil || parsed <= 0 {
			return 0, 0, fmt.Errorf("invalid season in week %q", raw)
		}
		seasonYear = parsed
		value = value[idx+1:]
	}
	week, err := strconv.Atoi(value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid week %q", raw)
	}
	if week <= 0 {
		return 0, 0, fmt.Errorf("week must be > 0")
	}
	return seasonYear, week, nil
}

// ParseWeek parses raw like ParseSeasonWeek and rejects a season prefix
// other than the calendar's.
func (c Calendar) ParseWeek(raw string) (int, error) {
	seasonYear, week, err := ParseSeasonWeek(raw)
	if err != nil {
		return 0, err
	}
	if err := c.CheckSeason(seasonYear); err != nil {
		return 0, err
	}
	return week, nil
}

// CheckSeason accepts zero (no season given) or the calendar's own season.
func (c Calendar) CheckSeason(seasonYear int) error {
	if seasonYear != 0 && seasonYear != c.Season {
		return fmt.Errorf("season %d is not the current season %d", seasonYear, c.Season)
	}
	return nil
}
