package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/magentamen/picks/internal/domain/pick"
)

type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeTie     Outcome = "tie"
	OutcomePending Outcome = "pending"
)

const (
	PointsWin  = 3
	PointsTie  = 1
	PointsLoss = 0
)

func (o Outcome) Points() int {
	switch o {
	case OutcomeWin:
		return PointsWin
	case OutcomeTie:
		return PointsTie
	default:
		return PointsLoss
	}
}

// Settled reports whether o is a final verdict.
func (o Outcome) Settled() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeTie
}

// ParseOutcome accepts the settled verdicts win, loss and tie.
func ParseOutcome(raw string) (Outcome, error) {
	value := Outcome(strings.ToLower(strings.TrimSpace(raw)))
	if !value.Settled() {
		return "", fmt.Errorf("invalid outcome %q", raw)
	}
	return value, nil
}

// Result is the stored verdict of one pick.
type Result struct {
	Season    int
	Week      int
	Player    string
	Category  pick.Category
	Outcome   Outcome
	PickID    string
	UpdatedAt time.Time
}

func (r Result) Validate() error {
	if r.Season <= 0 || r.Week <= 0 {
		return fmt.Errorf("result season and week must be > 0")
	}
	if strings.TrimSpace(r.Player) == "" {
		return fmt.Errorf("result player is required")
	}
	if _, err := pick.ParseCategory(string(r.Category)); err != nil {
		return err
	}
	if !r.Outcome.Settled() {
		return fmt.Errorf("invalid outcome %q", r.Outcome)
	}
	return nil
}
