package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. Init must run before anything logs;
// the zero value writes nowhere useful.
var Log zerolog.Logger

// Init configures Log for the given environment. Development gets a
// colorized console writer with caller info; everything else emits JSON
// lines for log shippers. LOG_LEVEL overrides the default level.
func Init(env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	var out zerolog.Logger
	if env == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			With().
			Timestamp().
			Caller().
			Logger()
	} else {
		out = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Str("service", "melbourneedu").
			Logger()
	}

	Log = out.Level(level)
}

func Debug() *zerolog.Event { return Log.Debug() }
func Info() *zerolog.Event  { return Log.Info() }
func Warn() *zerolog.Event  { return Log.Warn() }
func Error() *zerolog.Event { return Log.Error() }

// Fatal logs and then exits the process; reserve for startup failures.
func Fatal() *zerolog.Event { return Log.Fatal() }
