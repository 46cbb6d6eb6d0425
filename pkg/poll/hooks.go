package poll

import (
	"context"
	"time"
)

// Outcome describes how a poll invocation ended.
type Outcome string

const (
	OutcomeDone     Outcome = "done"
	OutcomeExceeded Outcome = "exceeded"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Event carries the details of a lifecycle callback.
type Event struct {
	Name    string
	ID      string
	Attempt int
	// Duration is the source call duration for OnResult and the total time for OnFinish.
	Duration time.Duration
	Active   bool
	Err      error
	Outcome  Outcome
}

// Hooks defines callbacks for poll observability. Nil callbacks are skipped.
// Callbacks run on the polling goroutine and delay the next attempt while they run.
type Hooks struct {
	OnAttempt func(context.Context, *Event)
	OnResult  func(context.Context, *Event)
	OnFinish  func(context.Context, *Event)
}

func (c *config) onAttempt(ctx context.Context, ev *Event) {
	for _, h := range c.hooks {
		if h.OnAttempt != nil {
			h.OnAttempt(ctx, ev)
		}
	}
}

func (c *config) onResult(ctx context.Context, ev *Event) {
	for _, h := range c.hooks {
		if h.OnResult != nil {
			h.OnResult(ctx, ev)
		}
	}
}

func (c *config) onFinish(ctx context.Context, ev *Event) {
	for _, h := range c.hooks {
		if h.OnFinish != nil {
			h.OnFinish(ctx, ev)
		}
	}
}
