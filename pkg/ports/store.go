package ports

import (
	"context"
	"errors"

	"github.com/aretw0/formlogic/pkg/poll"
)

// ErrAlreadyRunning is returned by Begin when another caller owns the operation.
var ErrAlreadyRunning = errors.New("operation already running")

// StatusStore persists the status of remote operations.
type StatusStore interface {
	// Publish stores report as the current status of operation id.
	Publish(ctx context.Context, id string, report poll.StatusReport) error

	// Load returns the current status of operation id.
	// An unknown operation is reported as poll.StatusNone, not as an error.
	Load(ctx context.Context, id string) (poll.StatusReport, error)

	// Clear forgets operation id.
	Clear(ctx context.Context, id string) error

	// Begin atomically publishes a running report unless one is already stored,
	// in which case it fails with ErrAlreadyRunning.
	Begin(ctx context.Context, id string, message string) error
}

// StatusSource adapts a store to a poll source for operation id.
func StatusSource(store StatusStore, id string) poll.Source[poll.StatusReport] {
	return func(ctx context.Context) (poll.StatusReport, error) {
		return store.Load(ctx, id)
	}
}
