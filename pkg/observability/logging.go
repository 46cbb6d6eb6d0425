package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/formlogic/pkg/poll"
)

// LogHooks returns poll hooks writing an audit trail to logger:
// every result at debug level and the outcome at info level, or warn when polling failed.
func LogHooks(logger *slog.Logger) poll.Hooks {
	return poll.Hooks{
		OnResult: func(ctx context.Context, e *poll.Event) {
			logger.DebugContext(ctx, "poll_result",
				"poll", e.Name,
				"id", e.ID,
				"attempt", e.Attempt,
				"active", e.Active,
				"duration", e.Duration,
			)
		},
		OnFinish: func(ctx context.Context, e *poll.Event) {
			level := slog.LevelInfo
			if e.Err != nil {
				level = slog.LevelWarn
			}
			attrs := []any{
				"poll", e.Name,
				"id", e.ID,
				"attempts", e.Attempt,
				"outcome", e.Outcome,
				"elapsed", e.Duration,
			}
			if e.Err != nil {
				attrs = append(attrs, "error", e.Err)
			}
			logger.Log(ctx, level, "poll_finish", attrs...)
		},
	}
}
