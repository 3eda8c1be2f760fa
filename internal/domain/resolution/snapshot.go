package resolution

import (
	"time"

	"github.com/magentamen/picks/internal/domain/gameresult"
)

// Snapshot is an immutable view of one week's game results.
type Snapshot struct {
	season  int
	week    int
	results []gameresult.GameResult
	takenAt time.Time
}

func NewSnapshot(season, week int, results []gameresult.GameResult, takenAt time.Time) Snapshot {
	copied := make([]gameresult.GameResult, len(results))
	copy(copied, results)
	return Snapshot{
		season:  season,
		week:    week,
		results: copied,
		takenAt: takenAt,
	}
}

func (s Snapshot) Season() int { return s.season }

func (s Snapshot) Week() int { return s.week }

func (s Snapshot) TakenAt() time.Time { return s.takenAt }

func (s Snapshot) Len() int { return len(s.results) }

// Results returns a copy of the results in snapshot order.
func (s Snapshot) Results() []gameresult.GameResult {
	out := make([]gameresult.GameResult, len(s.results))
	copy(out, s.results)
	return out
}

func (s Snapshot) FinalCount() int {
	count := 0
	for _, item := range s.results {
		if item.Final {
			count++
		}
	}
	return count
}
