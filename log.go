package logbook

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// LoggingContext returns a copy of ctx that rendering functions will log to
// using logger. Without it, nothing is logged.
func LoggingContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger attached to ctx by LoggingContext, with a
// component=logbook attribute so a host's log lines from rendering can be
// told apart from its own. Without one, it returns a logger that discards
// everything.
func Logger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger.With(slog.String("component", "logbook"))
}

// entryAttr identifies an entry in log lines.
func entryAttr(entry Entry) slog.Attr {
	return slog.Group("entry",
		slog.String("url", entry.URL),
		slog.String("title", entry.Title),
	)
}

// pageAttr identifies a page in log lines by its template cache key.
func pageAttr(ctx context.Context, page Page) slog.Attr {
	return slog.String("page", page.Key(ctx))
}
