package weeklock

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DefaultLockedBy = "Admin"

// ErrAlreadyLocked is returned by repositories when a lock row exists.
var ErrAlreadyLocked = errors.New("week already locked")

// Lock freezes the picks of one week.
type Lock struct {
	Season   int
	Week     int
	LockedBy string
	LockedAt time.Time
}

func (l Lock) Validate() error {
	if l.Season <= 0 || l.Week <= 0 {
		return fmt.Errorf("lock season and week must be > 0")
	}
	if strings.TrimSpace(l.LockedBy) == "" {
		return fmt.Errorf("lock owner is required")
	}
	return nil
}
