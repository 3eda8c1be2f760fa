package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// UserError is an error whose message is shown to pool players as is.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Kind }

func userError(kind error, message string) error {
	return &UserError{Kind: kind, Message: message}
}

var (
	errMissingData     = userError(ErrInvalidInput, "Missing required data")
	errMissingWeek     = userError(ErrInvalidInput, "Missing week parameter")
	errWeekOutOfRange  = userError(ErrInvalidInput, "Week is outside the season")
	errInvalidCategory = userError(ErrInvalidInput, "Invalid category")
	errInvalidOutcome  = userError(ErrInvalidInput, "Invalid outcome")
	errPlayerNotFound  = userError(ErrInvalidInput, "Player not found")
	errPickNotFound    = userError(ErrInvalidInput, "Pick not found")
	errPickTaken       = userError(ErrConflict, "This pick is already taken by another player")
	errWeekLocked      = userError(ErrConflict, "Week is locked")
	errAlreadyLocked   = userError(ErrConflict, "Week is already locked")
	errNotLocked       = userError(ErrConflict, "Week is not currently locked")
	errOddsDisabled    = userError(ErrInvalidInput, "No API key configured")

	// ErrNoGameResults is returned when the scores provider yields nothing to settle.
	ErrNoGameResults = userError(ErrInvalidInput, "No game results found or API error")
)

// Message returns the text to show for err: the UserError message when
// there is one, the full error otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
