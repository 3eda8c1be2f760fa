package resolution

import (
	"strings"

	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/scoring"
)

// Classify grades a pick against the snapshot. The first finalized result
// that yields a verdict decides; otherwise the pick is pending. An empty
// value has no verdict and reports false.
func Classify(category pick.Category, value string, snap Snapshot) (scoring.Outcome, bool) {
	if strings.TrimSpace(value) == "" {
		return "", false
	}

	for _, result := range snap.results {
		if !result.Final {
			continue
		}
		if outcome, ok := verdict(category, value, result); ok {
			return outcome, true
		}
	}
	return scoring.OutcomePending, true
}

func verdict(category pick.Category, value string, result gameresult.GameResult) (scoring.Outcome, bool) {
	switch category {
	case pick.CategoryMoneyline:
		return sideVerdict(value, result.MoneylineWinner, result.MoneylinePush, result)
	case pick.CategoryFavorite, pick.CategoryUnderdog:
		return sideVerdict(value, result.SpreadWinner, result.SpreadPush, result)
	case pick.CategoryOver:
		return totalVerdict(value, gameresult.TotalOver, gameresult.TotalUnder, result)
	case pick.CategoryUnder:
		return totalVerdict(value, gameresult.TotalUnder, gameresult.TotalOver, result)
	default:
		// touchdown scorers are graded by hand
		return "", false
	}
}

func sideVerdict(value, winner string, push bool, result gameresult.GameResult) (scoring.Outcome, bool) {
	switch {
	case winner != "" && value == winner:
		return scoring.OutcomeWin, true
	case winner != "":
		return scoring.OutcomeLoss, true
	case push && result.Involves(value):
		return scoring.OutcomeTie, true
	default:
		return "", false
	}
}

func totalVerdict(value string, win, lose gameresult.TotalResult, result gameresult.GameResult) (scoring.Outcome, bool) {
	switch result.TotalResult {
	case win:
		return scoring.OutcomeWin, true
	case lose:
		return scoring.OutcomeLoss, true
	case gameresult.TotalPush:
		if strings.HasSuffix(value, "("+result.Matchup()+")") {
			return scoring.OutcomeTie, true
		}
	}
	return "", false
}
