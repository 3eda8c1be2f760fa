package team

import (
	"fmt"
	"strings"
)

// Team is an NFL franchise as named by the odds provider.
type Team struct {
	Name         string
	Abbreviation string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if strings.TrimSpace(t.Abbreviation) == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}

// Directory maps full team names to abbreviations.
type Directory struct {
	byName map[string]string
}

func NewDirectory(items []Team) *Directory {
	byName := make(map[string]string, len(items))
	for _, item := range items {
		byName[item.Name] = item.Abbreviation
	}
	return &Directory{byName: byName}
}

// Abbreviation returns the short name for team; unmapped names pass through.
func (d *Directory) Abbreviation(name string) string {
	if d == nil {
		return name
	}
	if abbr, ok := d.byName[name]; ok {
		return abbr
	}
	return name
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byName)
}
