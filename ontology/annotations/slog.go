package annotations

import (
	"context"
	"log/slog"
	"sort"
)

// SlogHandler forwards events to a structured logger. Rejections, rollbacks
// and backend errors log at warn level, skipped statements at info, the rest
// at debug.
func SlogHandler(logger *slog.Logger) Handler {
	if logger == nil {
		return nil
	}
	return func(e Event) {
		level := slog.LevelDebug
		switch e.Name {
		case AxiomRejected, TxRollback, ErrorBackend:
			level = slog.LevelWarn
		case StatementSkipped:
			level = slog.LevelInfo
		}
		if !logger.Enabled(context.Background(), level) {
			return
		}
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make([]slog.Attr, 0, len(keys)+1)
		attrs = append(attrs, slog.Duration("latency", e.Latency))
		for _, k := range keys {
			attrs = append(attrs, slog.Any(k, e.Data[k]))
		}
		logger.LogAttrs(context.Background(), level, e.Name, attrs...)
	}
}
