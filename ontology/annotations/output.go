package annotations

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &OutputFormatter{useColor: useColor, writer: w}
}

// Handle implements the Handler interface - prints events as they occur
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)

	switch event.Name {
	case AxiomAdded:
		return fmt.Sprintf("%s %s %s %s (%s)",
			latency,
			f.colorize("+", color.FgGreen),
			f.colorize(str(event.Data["kind"]), color.FgCyan),
			truncate(str(event.Data["axiom"])),
			f.colorizeCount("triples", num(event.Data["triples.written"])))

	case AxiomRemoved:
		return fmt.Sprintf("%s %s %s %s (%s)",
			latency,
			f.colorize("-", color.FgYellow),
			f.colorize(str(event.Data["kind"]), color.FgCyan),
			truncate(str(event.Data["axiom"])),
			f.colorizeCount("triples", num(event.Data["triples.deleted"])))

	case AxiomRejected:
		return fmt.Sprintf("%s %s %s rejected: %v",
			latency,
			f.colorize("✗", color.FgRed),
			truncate(str(event.Data["axiom"])),
			event.Data["error"])

	case TxRollback:
		return fmt.Sprintf("%s %s rolled back %s",
			latency,
			f.colorize("↺", color.FgRed),
			f.colorizeCount("writes", num(event.Data["ops.count"])))

	case StatementSkipped:
		return fmt.Sprintf("%s %s skipped %s as %s: %v",
			latency,
			f.colorize("!", color.FgYellow),
			str(event.Data["statement"]),
			str(event.Data["kind"]),
			event.Data["error"])

	case CacheLoaded:
		return fmt.Sprintf("%s %s cache loaded with %s at generation %v (%d skipped)",
			latency,
			f.colorize("===", color.FgGreen),
			f.colorizeCount("axioms", num(event.Data["axioms.count"])),
			event.Data["generation"],
			num(event.Data["statements.skipped"]))

	case CacheCleared:
		return fmt.Sprintf("%s %s cache cleared, generation %v",
			latency,
			f.colorize("===", color.FgYellow),
			event.Data["generation"])

	case ErrorBackend:
		return fmt.Sprintf("%s %s backend error: %v",
			latency,
			f.colorize("✗", color.FgRed),
			event.Data["error"])

	default:
		// Generic format for unknown events
		return fmt.Sprintf("%s %s %v", latency, event.Name, event.Data)
	}
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func num(v any) int {
	if n, ok := v.(int); ok {
		return n
	}
	return 0
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color coding.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	// Use microseconds for sub-millisecond durations
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)

	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorizeCount formats a count with a label, using color based on the label type.
func (f *OutputFormatter) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)

	if !f.useColor {
		return text
	}

	switch strings.ToLower(label) {
	case "axioms":
		return color.CyanString(text)
	case "triples":
		return color.MagentaString(text)
	case "writes":
		return color.RedString(text)
	default:
		return text
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// truncate shortens long axiom renderings for display.
func truncate(s string) string {
	const maxLen = 100
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// ConsoleHandler creates a handler that prints formatted events to stderr.
func ConsoleHandler() Handler {
	return NewOutputFormatter(os.Stderr).Handle
}
