package player

import (
	"fmt"
	"strings"
)

// Position is an offensive position eligible for touchdown scorer picks.
type Position string

const (
	PositionQuarterback Position = "QB"
	PositionRunningBack Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd    Position = "TE"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback: {},
	PositionRunningBack: {},
	PositionWideReceiver: {},
	PositionTightEnd:    {},
}

// Player is a likely starter on an NFL roster.
type Player struct {
	ID       string
	Name     string
	Position Position
	Team     string
	Active   bool
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("player team is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}

// NormalizeTeams upper-cases, trims and de-duplicates team abbreviations.
func NormalizeTeams(teams []string) []string {
	out := make([]string, 0, len(teams))
	seen := make(map[string]struct{}, len(teams))
	for _, item := range teams {
		value := strings.ToUpper(strings.TrimSpace(item))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
