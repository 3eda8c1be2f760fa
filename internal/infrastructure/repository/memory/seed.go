package memory

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/magentamen/picks/internal/domain/player"
	"github.com/magentamen/picks/internal/domain/team"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Participants []string `yaml:"participants"`
	Teams        []struct {
		Name         string `yaml:"name"`
		Abbreviation string `yaml:"abbreviation"`
	} `yaml:"teams"`
	Starters []struct {
		Name     string `yaml:"name"`
		Position string `yaml:"position"`
		Team     string `yaml:"team"`
	} `yaml:"starters"`
}

var (
	seedOnce sync.Once
	seedData seedFile
	seedErr  error
)

func loadSeed() (seedFile, error) {
	seedOnce.Do(func() {
		if err := yaml.Unmarshal(seedYAML, &seedData); err != nil {
			seedErr = fmt.Errorf("decode seed yaml: %w", err)
		}
	})
	return seedData, seedErr
}

// SeedParticipants returns the pool members created at bootstrap.
func SeedParticipants() []string {
	data, err := loadSeed()
	if err != nil {
		return nil
	}
	out := make([]string, len(data.Participants))
	copy(out, data.Participants)
	return out
}

// SeedTeams returns the full-name to abbreviation table.
func SeedTeams() []team.Team {
	data, err := loadSeed()
	if err != nil {
		return nil
	}
	out := make([]team.Team, 0, len(data.Teams))
	for _, item := range data.Teams {
		out = append(out, team.Team{Name: item.Name, Abbreviation: item.Abbreviation})
	}
	return out
}

// SeedPlayers returns the starter directory.
func SeedPlayers() []player.Player {
	data, err := loadSeed()
	if err != nil {
		return nil
	}
	out := make([]player.Player, 0, len(data.Starters))
	for _, item := range data.Starters {
		out = append(out, player.Player{
			ID:       seedPlayerID(item.Team, item.Name),
			Name:     item.Name,
			Position: player.Position(item.Position),
			Team:     item.Team,
			Active:   true,
		})
	}
	return out
}

func seedPlayerID(teamAbbr, name string) string {
	slug := strings.ToLower(strings.NewReplacer(" ", "-", ".", "", "'", "").Replace(name))
	return "nfl-" + strings.ToLower(teamAbbr) + "-" + slug
}
