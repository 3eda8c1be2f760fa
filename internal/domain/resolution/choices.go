package resolution

import "github.com/magentamen/picks/internal/domain/pick"

// Choice is an option as presented to one player.
type Choice struct {
	Option
	Taken   bool
	TakenBy string
}

// MarkTaken flags options already held by another player in category.
func MarkTaken(options []Option, sheet pick.Sheet, category pick.Category, player string) []Choice {
	out := make([]Choice, 0, len(options))
	for _, item := range options {
		choice := Choice{Option: item}
		if holder, ok := sheet.Holder(category, item.Value, player); ok {
			choice.Taken = true
			choice.TakenBy = holder
		}
		out = append(out, choice)
	}
	return out
}
