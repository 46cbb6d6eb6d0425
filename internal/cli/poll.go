package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/formlogic/internal/logging"
	"github.com/aretw0/formlogic/pkg/adapters/process"
	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/aretw0/formlogic/pkg/observability"
	"github.com/aretw0/formlogic/pkg/poll"
	"github.com/aretw0/formlogic/pkg/ports"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PollOptions configures the poll command.
type PollOptions struct {
	// Command and Args run once per attempt. Probe selects a registered probe instead.
	Command string
	Args    []string
	Probe   string
	Probes  map[string]process.ProbeConfig
	BaseDir string

	// While keeps polling while it holds for the result. WhileExpr is an
	// expr-lang alternative. With neither, the first result ends polling.
	While     constraint.Node
	WhileExpr string

	All         bool
	Metrics     bool
	Logger      *slog.Logger
	PollOptions []poll.Option
}

// ResultData exposes a polled value to constraints and expressions. Objects are
// used as-is; any other value is available as "value".
func ResultData(v any) constraint.Map {
	if m, ok := v.(map[string]any); ok {
		return constraint.Map(m)
	}
	return constraint.Map{"value": v}
}

// CompileWhile builds a polling predicate from an expr-lang expression.
func CompileWhile(expression string) (poll.Predicate[any], error) {
	prog, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}
	return func(v any) bool {
		return runBool(prog, map[string]any(ResultData(v)))
	}, nil
}

func runBool(prog *vm.Program, env map[string]any) bool {
	result, err := expr.Run(prog, env)
	if err != nil {
		return false
	}
	b, _ := result.(bool)
	return b
}

func (o PollOptions) predicate() (poll.Predicate[any], error) {
	switch {
	case o.While != nil && o.WhileExpr != "":
		return nil, errors.New("--while and --while-expr cannot be used together")
	case o.While != nil:
		return func(v any) bool { return constraint.Test(o.While, ResultData(v)) }, nil
	case o.WhileExpr != "":
		return CompileWhile(o.WhileExpr)
	}
	return nil, nil
}

func (o PollOptions) source() (poll.Source[any], string, error) {
	runnerOpts := []process.RunnerOption{process.WithBaseDir(o.BaseDir)}
	if o.Probe != "" {
		r := process.NewRunner(append(runnerOpts, process.WithRegistry(o.Probes))...)
		src, err := r.Source(o.Probe)
		return src, o.Probe, err
	}
	if o.Command == "" {
		return nil, "", errors.New("no command to poll")
	}
	return process.Source(o.Command, o.Args, runnerOpts...), o.Command, nil
}

// Poll runs the configured command until the predicate stops holding and prints
// the final result as JSON, or every result with All.
func Poll(ctx context.Context, w io.Writer, o PollOptions) error {
	logger := o.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	isActive, err := o.predicate()
	if err != nil {
		return err
	}
	src, name, err := o.source()
	if err != nil {
		return err
	}

	opts := append([]poll.Option{
		poll.WithName(name),
		poll.WithLogger(logger),
		poll.WithHooks(observability.LogHooks(logger)),
	}, o.PollOptions...)

	reg := prometheus.NewRegistry()
	if o.Metrics {
		m, err := observability.NewPollMetrics(reg, "formlogic")
		if err != nil {
			return err
		}
		opts = append(opts, poll.WithHooks(m.Hooks()))
	}

	opts = append(opts, poll.WithReturnLastOnly(!o.All))
	var final error
	for res := range poll.Poll(ctx, src, isActive, opts...) {
		if res.Err != nil {
			final = res.Err
			break
		}
		if err := writeJSON(w, res.Value); err != nil {
			return err
		}
	}

	if o.Metrics {
		if err := writeMetrics(w, reg); err != nil {
			return err
		}
	}
	return final
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// AwaitStatus waits until the status published under id becomes terminal,
// then prints it as JSON. An error status is returned as an error.
func AwaitStatus(ctx context.Context, w io.Writer, store ports.StatusStore, id string, opts ...poll.Option) error {
	report, err := poll.Await(ctx, ports.StatusSource(store, id), opts...)
	if report.Status != "" {
		if writeErr := writeJSON(w, report); writeErr != nil {
			return writeErr
		}
	}
	return err
}

// PublishStatus stores a status report under id.
func PublishStatus(ctx context.Context, store ports.StatusStore, id string, report poll.StatusReport) error {
	if !report.Status.Terminal() && report.Status != poll.StatusRunning {
		return fmt.Errorf("cannot publish status %q", report.Status)
	}
	return store.Publish(ctx, id, report)
}
