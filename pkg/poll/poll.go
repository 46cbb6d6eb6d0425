package poll

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Source produces one observation of the polled operation.
// It must honour ctx: cancelling the poll cancels the in-flight call through it.
type Source[T any] func(ctx context.Context) (T, error)

// Predicate reports whether the observed operation is still active, i.e. whether
// polling should continue. A nil Predicate stops after the first result.
type Predicate[T any] func(T) bool

// Result is delivered on the channel returned by Poll.
type Result[T any] struct {
	Value T
	// Err is set on the terminal result of a failed, exhausted or cancelled poll.
	Err error
	// Attempt is the 1-based attempt that produced Value.
	Attempt int
}

// Poll starts polling src in a new goroutine and returns the channel its results are
// delivered on. The channel is closed when polling ends.
//
// By default the channel carries exactly one Result: the first inactive value, or the
// error that ended polling. With WithReturnLastOnly(false) every result is delivered in
// order, the last one being the inactive value or the error.
func Poll[T any](ctx context.Context, src Source[T], isActive Predicate[T], opts ...Option) <-chan Result[T] {
	cfg := newConfig(opts)
	out := make(chan Result[T], 1)
	p := &poller[T]{
		cfg:      cfg,
		src:      src,
		isActive: isActive,
		out:      out,
		ev:       Event{Name: cfg.name, ID: uuid.NewString()},
	}
	go func() {
		defer close(out)
		p.run(ctx)
	}()
	return out
}

// Wait polls src and blocks until the final result is known.
func Wait[T any](ctx context.Context, src Source[T], isActive Predicate[T], opts ...Option) (T, error) {
	opts = append(opts, WithReturnLastOnly(true))
	r, ok := <-Poll(ctx, src, isActive, opts...)
	if !ok {
		var zero T
		return zero, ctx.Err()
	}
	return r.Value, r.Err
}

// Stream polls src delivering every result; see Poll.
func Stream[T any](ctx context.Context, src Source[T], isActive Predicate[T], opts ...Option) <-chan Result[T] {
	opts = append(opts, WithReturnLastOnly(false))
	return Poll(ctx, src, isActive, opts...)
}

type poller[T any] struct {
	cfg      *config
	src      Source[T]
	isActive Predicate[T]
	out      chan Result[T]
	ev       Event
}

func (p *poller[T]) run(ctx context.Context) {
	cfg := p.cfg
	log := cfg.logger.With("poll", p.ev.Name, "id", p.ev.ID)
	started := cfg.clock.Now()

	finish := func(r Result[T], outcome Outcome) {
		ev := p.ev
		ev.Attempt = r.Attempt
		ev.Duration = cfg.clock.Since(started)
		ev.Err = r.Err
		ev.Outcome = outcome
		cfg.onFinish(ctx, &ev)

		if r.Err != nil {
			log.Warn("poll finished", "outcome", outcome, "attempts", r.Attempt, "error", r.Err)
		} else {
			log.Debug("poll finished", "outcome", outcome, "attempts", r.Attempt)
		}
		p.deliver(ctx, r)
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			finish(Result[T]{Err: err, Attempt: attempt - 1}, OutcomeCanceled)
			return
		}
		if cfg.maxAttempts > 0 && attempt > cfg.maxAttempts {
			err := &ExceededError{Attempts: cfg.maxAttempts, Message: cfg.errorMessage()}
			finish(Result[T]{Err: err, Attempt: attempt - 1}, OutcomeExceeded)
			return
		}

		ev := p.ev
		ev.Attempt = attempt
		cfg.onAttempt(ctx, &ev)
		log.Debug("poll attempt", "attempt", attempt)

		began := cfg.clock.Now()
		value, err := p.src(ctx)
		ev.Duration = cfg.clock.Since(began)
		if err != nil {
			ev.Err = err
			cfg.onResult(ctx, &ev)
			outcome := OutcomeFailed
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				outcome = OutcomeCanceled
			}
			finish(Result[T]{Err: err, Attempt: attempt}, outcome)
			return
		}

		ev.Active = p.isActive != nil && p.isActive(value)
		cfg.onResult(ctx, &ev)
		if !ev.Active {
			finish(Result[T]{Value: value, Attempt: attempt}, OutcomeDone)
			return
		}

		if !cfg.lastOnly {
			select {
			case p.out <- Result[T]{Value: value, Attempt: attempt}:
			case <-ctx.Done():
				finish(Result[T]{Err: ctx.Err(), Attempt: attempt}, OutcomeCanceled)
				return
			}
		}

		if cfg.interval <= 0 {
			continue
		}
		timer := cfg.clock.NewTimer(cfg.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			finish(Result[T]{Err: ctx.Err(), Attempt: attempt}, OutcomeCanceled)
			return
		case <-timer.C():
		}
	}
}

// deliver sends the terminal result. A consumer that went away together with ctx
// must not block the goroutine forever.
func (p *poller[T]) deliver(ctx context.Context, r Result[T]) {
	select {
	case p.out <- r:
		return
	default:
	}
	select {
	case p.out <- r:
	case <-ctx.Done():
	}
}
