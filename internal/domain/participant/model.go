package participant

import (
	"fmt"
	"strings"
	"time"
)

// Participant is a named member of the pool.
type Participant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (p Participant) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("participant id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("participant name is required")
	}
	return nil
}
