package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the timestamp layout printed under each console message.
const ConsoleTimeFormat = "2006-01-02 15:04:05.000"

// Config captures options for building the process logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Format string    // "console" (default) or "json"
	Output io.Writer // optional writer (defaults to os.Stderr)
}

// New returns a logger configured from cfg. An unparsable level is an error so
// that a typo on the command line does not silently drop output.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer
	switch cfg.Format {
	case "", "console":
		w = consoleWriter(out)
	case "json":
		w = out
	default:
		return zerolog.Nop(), fmt.Errorf("log format %q: want console or json", cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str(FieldComponent, component).Logger()
}

// consoleWriter prints the message first and the millisecond timestamp on the
// line below it. Remaining fields follow the timestamp.
func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		PartsOrder: []string{zerolog.MessageFieldName},
		FieldsExclude: []string{
			FieldComponent,
		},
		// Parts are space-joined; the timestamp rides in the message instead.
		FormatPrepare: func(evt map[string]interface{}) error {
			msg, _ := evt[zerolog.MessageFieldName].(string)
			msg = strings.TrimRight(msg, " \n")
			if ts, ok := evt[zerolog.TimestampFieldName].(string); ok {
				msg += "\n" + consoleTime(ts)
				delete(evt, zerolog.TimestampFieldName)
			}
			evt[zerolog.MessageFieldName] = msg
			return nil
		},
	}
}

func consoleTime(s string) string {
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return ts.Local().Format(ConsoleTimeFormat)
}
