// Package diag is the module's whole logging surface: two sinks,
// info(msg) and fail(msg) -> never, backed by zerolog.
package diag

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger. Callers needing
// request-scoped fields should derive from it with .With(), the same
// way the teacher repo builds a scoped logger per test
// (gnarkLogger = zerolog.New(...).With().Timestamp().Logger()).
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	Level(zerolog.InfoLevel).
	With().
	Timestamp().
	Logger()

// Info reports a non-fatal diagnostic message.
func Info(msg string, fields ...func(*zerolog.Event) *zerolog.Event) {
	ev := Logger.Info()
	for _, f := range fields {
		ev = f(ev)
	}
	ev.Msg(msg)
}

// Fail reports a fatal diagnostic and aborts the computation. It never
// returns, matching the original prototype's die(s) -> ! semantics:
// primitive-level invariant violations are caller bugs, not recoverable
// protocol events.
func Fail(msg string) {
	Logger.Error().Msg(msg)
	panic(msg)
}
