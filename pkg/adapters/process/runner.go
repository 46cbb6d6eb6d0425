package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/formlogic/pkg/poll"
)

// waitDelay bounds how long a cancelled probe may keep its output pipes open,
// e.g. through orphaned child processes.
const waitDelay = time.Second

// ErrNotRegistered is returned when a probe name is not on the allow-list.
var ErrNotRegistered = errors.New("probe not registered")

// ExecError reports a probe that could not run or exited unsuccessfully.
type ExecError struct {
	Command string
	Err     error
	Stderr  string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execution of %s failed: %v. Stderr: %s", e.Command, e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Runner executes local probe commands.
// It follows a strict registry pattern: only registered probes can be turned into sources.
type Runner struct {
	registry map[string]registeredProbe
	baseDir  string
	env      map[string]string
	args     map[string]any
}

type registeredProbe struct {
	command string
	args    []string
	env     map[string]string
	timeout time.Duration
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithRegistry populates the allow-list from loaded probes.
func WithRegistry(probes map[string]ProbeConfig) RunnerOption {
	return func(r *Runner) {
		for name, p := range probes {
			timeout, err := p.timeout()
			if err != nil {
				timeout = DefaultProbeTimeout
			}
			r.registry[name] = registeredProbe{command: p.Command, args: p.Args, env: p.Environment, timeout: timeout}
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv adds environment variables to every execution.
func WithEnv(env map[string]string) RunnerOption {
	return func(r *Runner) {
		for k, v := range env {
			r.env[k] = v
		}
	}
}

// WithArgs passes structured arguments as FORMLOGIC_ARG_<KEY> environment variables
// rather than command flags, so values can never inject options.
func WithArgs(args map[string]any) RunnerOption {
	return func(r *Runner) {
		for k, v := range args {
			r.args[k] = v
		}
	}
}

// NewRunner creates a new process runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]registeredProbe),
		env:      make(map[string]string),
		args:     make(map[string]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list. It runs without a time limit
// other than the caller's context.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = registeredProbe{command: command, args: args}
}

// Source returns a poll source executing the registered probe once per attempt.
func (r *Runner) Source(name string) (poll.Source[any], error) {
	p, ok := r.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return func(ctx context.Context) (any, error) {
		return r.run(ctx, p)
	}, nil
}

// Source returns a poll source executing command with args once per attempt.
// The command's JSON stdout is decoded; any other output is returned as a trimmed string.
func Source(command string, args []string, opts ...RunnerOption) poll.Source[any] {
	r := NewRunner(opts...)
	p := registeredProbe{command: command, args: args}
	return func(ctx context.Context) (any, error) {
		return r.run(ctx, p)
	}
}

func (r *Runner) run(ctx context.Context, p registeredProbe) (any, error) {
	runCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, p.command, p.args...)
	cmd.Dir = r.baseDir
	cmd.WaitDelay = waitDelay
	cmd.Env = append(cmd.Environ(), r.environment(p)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if runCtx.Err() != nil {
			err = fmt.Errorf("timed out after %s: %w", p.timeout, runCtx.Err())
		}
		return nil, &ExecError{Command: p.command, Err: err, Stderr: stderr.String()}
	}
	return decodeOutput(stdout.String()), nil
}

func (r *Runner) environment(p registeredProbe) []string {
	var env []string
	for _, vars := range []map[string]string{r.env, p.env} {
		for k, v := range vars {
			env = append(env, k+"="+v)
		}
	}
	for k, v := range r.args {
		env = append(env, fmt.Sprintf("FORMLOGIC_ARG_%s=%s", strings.ToUpper(k), formatArg(v)))
	}
	sort.Strings(env)
	return env
}

// formatArg renders primitives with fmt and complex values as JSON.
func formatArg(v any) string {
	switch v.(type) {
	case string, int, int64, float64, bool:
		return fmt.Sprintf("%v", v)
	case nil:
		return ""
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}

// decodeOutput auto-detects JSON objects and arrays, falling back to the trimmed text.
func decodeOutput(output string) any {
	trimmed := strings.TrimSpace(output)
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return trimmed
}
