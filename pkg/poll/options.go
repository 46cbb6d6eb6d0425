package poll

import (
	"log/slog"
	"time"

	"github.com/aretw0/formlogic/internal/logging"
	"k8s.io/utils/clock"
)

const (
	// DefaultInterval is the delay between two attempts.
	DefaultInterval = 5 * time.Second
	// DefaultErrorMessage is the message of *ExceededError when none is configured.
	DefaultErrorMessage = "Failed to fetch data"
	// Unlimited disables the attempt budget.
	Unlimited = 0
)

// Option configures a poll invocation.
type Option func(*config)

type config struct {
	name        string
	maxAttempts int
	message     func() string
	interval    time.Duration
	lastOnly    bool
	clock       clock.Clock
	logger      *slog.Logger
	hooks       []Hooks
}

func newConfig(opts []Option) *config {
	cfg := &config{
		name:        "poll",
		maxAttempts: Unlimited,
		interval:    DefaultInterval,
		lastOnly:    true,
		clock:       clock.RealClock{},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) errorMessage() string {
	if c.message != nil {
		if msg := c.message(); msg != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}

// WithMaxAttempts bounds the number of source invocations. Attempt n is allowed,
// attempt n+1 fails with *ExceededError. Values <= 0 mean Unlimited.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithErrorMessage sets the message of the error raised when attempts run out.
func WithErrorMessage(msg string) Option {
	return func(c *config) {
		c.message = func() string { return msg }
	}
}

// WithMessageFunc resolves the error message only when attempts run out,
// e.g. to translate it into the user's current locale.
func WithMessageFunc(fn func() string) Option {
	return func(c *config) {
		c.message = fn
	}
}

// WithInterval sets the delay between the end of one attempt and the start of the next.
// A zero or negative interval polls back to back.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithReturnLastOnly selects between delivering only the final result (the default)
// and delivering every result as it arrives.
func WithReturnLastOnly(lastOnly bool) Option {
	return func(c *config) {
		c.lastOnly = lastOnly
	}
}

// WithClock replaces the clock used for intervals and durations.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		c.clock = clk
	}
}

// WithLogger sets the logger for attempt and outcome records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers lifecycle callbacks. It may be given more than once.
func WithHooks(h Hooks) Option {
	return func(c *config) {
		c.hooks = append(c.hooks, h)
	}
}

// WithName labels the invocation in logs, events and metrics.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}
