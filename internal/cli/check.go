package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aretw0/formlogic/internal/logging"
	"github.com/aretw0/formlogic/pkg/constraint"
	"github.com/aretw0/formlogic/pkg/form"
	"github.com/aretw0/formlogic/pkg/poll"
)

// ErrInvalidData is returned by Check when the data fails validation.
var ErrInvalidData = errors.New("data is invalid")

// Check prints the resolved state of every field and the validation outcome.
func Check(w io.Writer, f *form.Form, data constraint.Map) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tTYPE\tFLAGS\tVALUE")
	for _, s := range f.Resolve(data) {
		value := "-"
		if s.Present {
			value = constraint.FormatLiteral(s.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.Type, flags(s), value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	err := f.Validate(data)
	if err == nil {
		fmt.Fprintln(w, "\nData is valid! ✅")
		return nil
	}

	fmt.Fprintln(w, "\nValidation failed:")
	for _, ve := range form.ValidationErrors(err) {
		fmt.Fprintf(w, "  - %s\n", ve.Error())
	}
	return ErrInvalidData
}

func flags(s form.FieldState) string {
	var out []string
	if s.Hidden {
		out = append(out, "hidden")
	}
	if s.Required {
		out = append(out, "required")
	}
	if s.Readonly {
		out = append(out, "readonly")
	}
	if s.Computed {
		out = append(out, "computed")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}

// DefaultWatchInterval is how often CheckWatch looks for file changes.
const DefaultWatchInterval = 500 * time.Millisecond

// WatchOptions configures CheckWatch.
type WatchOptions struct {
	FormPath string
	DataPath string
	Interval time.Duration
	Logger   *slog.Logger
}

// CheckWatch re-runs Check whenever the form or data file changes, until ctx
// is cancelled. Load errors are reported and the watch continues.
func CheckWatch(ctx context.Context, w io.Writer, opts WatchOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	paths := []string{opts.FormPath}
	if opts.DataPath != "" {
		paths = append(paths, opts.DataPath)
	}

	changes := poll.Stream(ctx, fingerprint(paths), func(string) bool { return true },
		poll.WithName("watch"),
		poll.WithInterval(interval),
		poll.WithLogger(logger),
	)

	last := ""
	for res := range changes {
		if res.Err != nil {
			if IsInterrupted(res.Err) {
				return nil
			}
			return res.Err
		}
		if res.Value == last {
			continue
		}
		if last != "" {
			printSystemMessage(w, "Change detected in '%s'.", strings.Join(paths, "', '"))
		}
		last = res.Value
		checkOnce(w, opts.FormPath, opts.DataPath, logger)
		printSystemMessage(w, "Waiting for changes...")
	}
	return nil
}

func checkOnce(w io.Writer, formPath, dataPath string, logger *slog.Logger) {
	f, err := LoadForm(formPath, form.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	data, err := LoadData(dataPath)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if err := Check(w, f, data); err != nil && !errors.Is(err, ErrInvalidData) {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// fingerprint summarises the size and modification time of every path.
// Missing files contribute a marker, so their creation is seen as a change.
func fingerprint(paths []string) poll.Source[string] {
	return func(context.Context) (string, error) {
		var sb strings.Builder
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				fmt.Fprintf(&sb, "%s:missing;", p)
				continue
			}
			fmt.Fprintf(&sb, "%s:%d:%d;", p, info.Size(), info.ModTime().UnixNano())
		}
		return sb.String(), nil
	}
}
