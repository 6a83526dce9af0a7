package convergence

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so that
// records are never built.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger of the package. By default nothing is logged.
// Passing nil restores the silent default. SetLogger is safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: one record per approximation
//   - [slog.LevelInfo]: start and end of a sweep
//   - [slog.LevelWarn]: orders skipped after an integrand failure
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger of the package.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
