package checkins

import "errors"

var (
	ErrNotFound = errors.New("check-in not found")
	// ErrPersistence wraps a failed check-in write. Losing a check-in is the one
	// failure this feature never masks.
	ErrPersistence = errors.New("check-in could not be saved")
)

// ValidationError marks bad or over-limit input. Handlers map it to 400 before
// any upstream call happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
