package pick

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryMoneyline       Category = "Moneyline"
	CategoryFavorite        Category = "Favorite"
	CategoryUnderdog        Category = "Underdog"
	CategoryOver            Category = "Over"
	CategoryUnder           Category = "Under"
	CategoryTouchdownScorer Category = "Touchdown Scorer"
)

var categories = []Category{
	CategoryMoneyline,
	CategoryFavorite,
	CategoryUnderdog,
	CategoryOver,
	CategoryUnder,
	CategoryTouchdownScorer,
}

// Categories returns the closed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(raw string) (Category, error) {
	value := strings.TrimSpace(raw)
	for _, item := range categories {
		if string(item) == value {
			return item, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", raw)
}

func (c Category) String() string {
	return string(c)
}

// Pick is one player's chosen value for a category in a week.
type Pick struct {
	ID        string
	Season    int
	Week      int
	Player    string
	Category  Category
	Value     string
	UpdatedAt time.Time
}

func (p Pick) Validate() error {
	if p.Season <= 0 {
		return fmt.Errorf("pick season must be > 0")
	}
	if p.Week <= 0 {
		return fmt.Errorf("pick week must be > 0")
	}
	if strings.TrimSpace(p.Player) == "" {
		return fmt.Errorf("pick player is required")
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return err
	}
	if strings.TrimSpace(p.Value) == "" {
		return fmt.Errorf("pick value is required")
	}
	return nil
}

// Sheet is the week's picks keyed by player then category.
type Sheet map[string]map[Category]string

func SheetFrom(items []Pick) Sheet {
	out := make(Sheet)
	for _, item := range items {
		row, ok := out[item.Player]
		if !ok {
			row = make(map[Category]string)
			out[item.Player] = row
		}
		row[item.Category] = item.Value
	}
	return out
}

// Holder returns the player other than exclude holding value in category.
func (s Sheet) Holder(category Category, value, exclude string) (string, bool) {
	for player, row := range s {
		if player == exclude {
			continue
		}
		if row[category] == value && value != "" {
			return player, true
		}
	}
	return "", false
}
