package log

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	isTerminal           = isatty.IsTerminal(os.Stderr.Fd())
	Output     io.Writer = os.Stderr
)

func init() {
	zerolog.TimeFieldFormat = "2006-01-02 15:04:05"
}

// New returns a logger tagged with the component name. Progress goes to
// stderr so that stdout stays usable for the '-' output target.
func New(name string) zerolog.Logger {
	if isTerminal {
		return zerolog.New(zerolog.ConsoleWriter{Out: Output, TimeFormat: "15:04:05"}).
			With().
			Timestamp().
			Str("component", name).
			Logger()
	}
	return zerolog.New(Output).
		With().
		Str("component", name).
		Timestamp().
		Logger()
}

func SetDebug(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
