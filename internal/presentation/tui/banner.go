package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the formlogic ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{"   __                      _             _      ", "#818cf8"},
		{"  / _| ___  _ __ _ __ ___ | | ___   __ _(_) ___ ", "#a78bfa"},
		{" | |_ / _ \\| '__| '_ ` _ \\| |/ _ \\ / _` | |/ __|", "#c084fc"},
		{" |  _| (_) | |  | | | | | | | (_) | (_| | | (__ ", "#e879f9"},
		{" |_|  \\___/|_|  |_| |_| |_|_|\\___/ \\__, |_|\\___|", "#f472b6"},
		{"                                   |___/        ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
