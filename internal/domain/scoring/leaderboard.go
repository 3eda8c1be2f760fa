package scoring

import (
	"fmt"
	"math"
	"sort"
)

// WeekStat is one player's tally for a single week.
type WeekStat struct {
	Season int
	Week   int
	Points int
	Wins   int
	Losses int
	Ties   int
}

func (w WeekStat) Record() string {
	return formatRecord(w.Wins, w.Losses, w.Ties)
}

type Standing struct {
	Player      string
	TotalPoints int
	Wins        int
	Losses      int
	Ties        int
	WinPct      float64
	Last3       WeekStat
	Last5       WeekStat
	Weekly      []WeekStat
}

func (s Standing) Record() string {
	return formatRecord(s.Wins, s.Losses, s.Ties)
}

// BuildLeaderboard aggregates settled results into standings ordered by
// total points, then player name.
func BuildLeaderboard(results []Result) []Standing {
	type weekKey struct {
		season int
		week   int
	}

	weekly := make(map[string]map[weekKey]*WeekStat)
	for _, item := range results {
		if !item.Outcome.Settled() {
			continue
		}
		byWeek, ok := weekly[item.Player]
		if !ok {
			byWeek = make(map[weekKey]*WeekStat)
			weekly[item.Player] = byWeek
		}
		key := weekKey{season: item.Season, week: item.Week}
		stat, ok := byWeek[key]
		if !ok {
			stat = &WeekStat{Season: item.Season, Week: item.Week}
			byWeek[key] = stat
		}
		stat.add(item.Outcome)
	}

	out := make([]Standing, 0, len(weekly))
	for player, byWeek := range weekly {
		standing := Standing{Player: player, Weekly: make([]WeekStat, 0, len(byWeek))}
		for _, stat := range byWeek {
			standing.Weekly = append(standing.Weekly, *stat)
			standing.TotalPoints += stat.Points
			standing.Wins += stat.Wins
			standing.Losses += stat.Losses
			standing.Ties += stat.Ties
		}
		sort.Slice(standing.Weekly, func(i, j int) bool {
			if standing.Weekly[i].Season != standing.Weekly[j].Season {
				return standing.Weekly[i].Season < standing.Weekly[j].Season
			}
			return standing.Weekly[i].Week < standing.Weekly[j].Week
		})
		standing.WinPct = winPct(standing.Wins, standing.Losses, standing.Ties)
		standing.Last3 = sumLast(standing.Weekly, 3)
		standing.Last5 = sumLast(standing.Weekly, 5)
		out = append(out, standing)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].Player < out[j].Player
	})
	return out
}

func (w *WeekStat) add(outcome Outcome) {
	w.Points += outcome.Points()
	switch outcome {
	case OutcomeWin:
		w.Wins++
	case OutcomeLoss:
		w.Losses++
	case OutcomeTie:
		w.Ties++
	}
}

func sumLast(items []WeekStat, n int) WeekStat {
	if len(items) > n {
		items = items[len(items)-n:]
	}
	var out WeekStat
	for _, item := range items {
		out.Points += item.Points
		out.Wins += item.Wins
		out.Losses += item.Losses
		out.Ties += item.Ties
	}
	return out
}

func winPct(wins, losses, ties int) float64 {
	total := wins + losses + ties
	if total == 0 {
		return 0
	}
	pct := (float64(wins) + 0.5*float64(ties)) / float64(total)
	return math.Round(pct*1000) / 1000
}

func formatRecord(wins, losses, ties int) string {
	return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
}
