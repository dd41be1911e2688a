// Package xlog wraps zerolog for the exchange core's structured logging.
// The core takes a logger by constructor injection (exchange.New has no
// default; callers pass one explicitly), and Nop gives a silent one.
package xlog

import (
	"io"

	"github.com/rs/zerolog"
)

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// New builds a console-writer logger for example harnesses and tests that
// want readable output; w is typically os.Stdout.
func New(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
