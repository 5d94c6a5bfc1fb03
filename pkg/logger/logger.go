// Package logger wraps zerolog behind a process-wide singleton.
//
// Call Init once in main with the configured level, then use Get (or
// Component for a tagged child logger) from any package.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	root  zerolog.Logger
	once  sync.Once
	ready bool
)

// Init builds the singleton logger. level is one of trace, debug, info,
// warn, error (anything else falls back to info). When pretty is true the
// output is human-readable console text, otherwise JSON lines. A nil out
// defaults to os.Stderr.
//
// Only the first call takes effect; later calls return the existing logger.
func Init(level string, pretty bool, out io.Writer) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		if out == nil {
			out = os.Stderr
		}
		if pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}

		lvl := levelFrom(level)
		zerolog.SetGlobalLevel(lvl)

		root = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
		ready = true
	})
	return root
}

// Get returns the singleton logger. Panics when Init has not run yet, which
// always indicates a wiring bug in main.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get called before Init")
	}
	return root
}

// Component returns a child logger tagged with a component name, e.g.
// logger.Component("mail") adds component=mail to every event.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset discards the singleton so the next Init rebuilds it. Test use only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}

func levelFrom(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
