package poll

import (
	"context"
	"fmt"
	"slices"
)

// Status is the state of a remote operation: none → running → done | error.
type Status string

const (
	StatusNone    Status = "none"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Terminal reports whether the remote operation has finished.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// StatusReport is a snapshot of a remote operation, as served by status endpoints.
type StatusReport struct {
	Status   Status  `json:"status" yaml:"status"`
	Message  string  `json:"message,omitempty" yaml:"message,omitempty"`
	Progress float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// Err returns an error wrapping ErrRemoteFailed when the report is in StatusError.
func (r StatusReport) Err() error {
	if r.Status != StatusError {
		return nil
	}
	if r.Message == "" {
		return ErrRemoteFailed
	}
	return fmt.Errorf("%w: %s", ErrRemoteFailed, r.Message)
}

// WhileRunning keeps polling until the remote operation reached a terminal status.
func WhileRunning(r StatusReport) bool {
	return !r.Status.Terminal()
}

// WhileStatus keeps polling while the report is in one of statuses.
func WhileStatus(statuses ...Status) Predicate[StatusReport] {
	return func(r StatusReport) bool {
		return slices.Contains(statuses, r.Status)
	}
}

// Await polls a status source until the remote operation finishes. A report in
// StatusError is returned together with its Err.
func Await(ctx context.Context, src Source[StatusReport], opts ...Option) (StatusReport, error) {
	report, err := Wait(ctx, src, WhileRunning, opts...)
	if err != nil {
		return report, err
	}
	return report, report.Err()
}
