package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultPerms = 0o0600

//nolint:gochecknoglobals
var setTimeFormat sync.Once

// Logger extends zerolog's Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds a logger at the given level writing to output (a file path)
// or to stdout when output is empty.
func NewLogger(level, output string) (Logger, error) {
	setTimeFormat.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
	})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return Logger{}, err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		file, err := os.OpenFile(output, os.O_APPEND|os.O_WRONLY|os.O_CREATE, defaultPerms)
		if err != nil {
			return Logger{}, err
		}
		w = file
	}

	return New(w, lvl), nil
}

// New builds a logger on an arbitrary writer.
func New(w io.Writer, lvl zerolog.Level) Logger {
	return Logger{Logger: zerolog.New(w).Level(lvl).With().Timestamp().Caller().Logger()}
}

// Nop discards everything.
func Nop() Logger {
	return Logger{Logger: zerolog.Nop()}
}

// Component returns a child logger tagged with the component name.
func (l Logger) Component(name string) Logger {
	return Logger{Logger: l.With().Str("component", name).Logger()}
}
