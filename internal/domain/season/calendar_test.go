package season

import (
	"testing"
	"time"
)

func TestCalendarWeekAt(t *testing.T) {
	t.Parallel()

	cal := Default()
	cases := []struct {
		name string
		at   time.Time
		want int
	}{
		{name: "before season clamps to week 1", at: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "kickoff day", at: time.Date(2025, time.September, 4, 20, 0, 0, 0, time.UTC), want: 1},
		{name: "last day of week 1", at: time.Date(2025, time.September, 10, 23, 59, 0, 0, time.UTC), want: 1},
		{name: "first day of week 2", at: time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC), want: 2},
		{name: "after season clamps to last week", at: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), want: 18},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := cal.WeekAt(tc.at); got != tc.want {
				t.Fatalf("unexpected week: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestCalendarWindow(t *testing.T) {
	t.Parallel()

	start, end := Default().Window(3)
	wantStart := time.Date(2025, time.September, 18, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("unexpected start: got=%s want=%s", start, wantStart)
	}
	if got := end.Sub(start); got != 7*24*time.Hour {
		t.Fatalf("unexpected window length: %s", got)
	}
}

func TestParseSeasonWeek(t *testing.T) {
	t.Parallel()

	cases := map[string][2]int{"1": {0, 1}, "2025-1": {2025, 1}, " 12 ": {0, 12}, "2024-18": {2024, 18}}
	for raw, want := range cases {
		seasonYear, week, err := ParseSeasonWeek(raw)
		if err != nil {
			t.Fatalf("parse week %q: %v", raw, err)
		}
		if seasonYear != want[0] || week != want[1] {
			t.Fatalf("parse week %q: got=%d-%d want=%d-%d", raw, seasonYear, week, want[0], want[1])
		}
	}

	for _, raw := range []string{"", "abc", "0", "2025-x", "abc-3", "2025-0"} {
		if _, _, err := ParseSeasonWeek(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestCalendarParseWeek_RejectsOtherSeason(t *testing.T) {
	t.Parallel()

	calendar := Default()
	for raw, want := range map[string]int{"3": 3, "2025-3": 3} {
		got, err := calendar.ParseWeek(raw)
		if err != nil || got != want {
			t.Fatalf("parse week %q: got=%d err=%v", raw, got, err)
		}
	}
	if _, err := calendar.ParseWeek("2024-3"); err == nil {
		t.Fatal("expected a prior season prefix to be rejected")
	}
}
