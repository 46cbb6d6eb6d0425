package poll

import "errors"

var (
	// ErrAttemptsExceeded is wrapped by *ExceededError.
	ErrAttemptsExceeded = errors.New("poll: attempts exceeded")
	// ErrRemoteFailed is returned when a polled remote operation reports StatusError.
	ErrRemoteFailed = errors.New("remote operation failed")
)

// ExceededError is returned when polling needs more attempts than allowed.
// Its message is the configured error message, resolved when the budget ran out.
type ExceededError struct {
	Attempts int
	Message  string
}

func (e *ExceededError) Error() string {
	return e.Message
}

func (e *ExceededError) Unwrap() error {
	return ErrAttemptsExceeded
}
