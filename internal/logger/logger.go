// Package logger owns the zerolog logger every component derives from.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	OutputStdout  = "stdout"
	OutputStderr  = "stderr"
	OutputConsole = "console"
)

type Config struct {
	Level  string
	Debug  bool
	Output string
}

var (
	mu   sync.RWMutex
	root = build(os.Stdout, zerolog.InfoLevel)
)

// Init replaces the root logger. Component loggers taken before Init keep
// the old settings.
func Init(cfg Config) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}
	w, err := cfg.writer()
	if err != nil {
		return err
	}

	mu.Lock()
	root = build(w, level)
	mu.Unlock()
	return nil
}

// SetOutput redirects the root logger, keeping its level.
func SetOutput(w io.Writer) {
	mu.Lock()
	root = root.Output(w)
	mu.Unlock()
}

func WithComponent(component string) zerolog.Logger {
	return current().With().Str("component", component).Logger()
}

func Error() *zerolog.Event {
	l := current()
	return l.Error()
}

func Fatal() *zerolog.Event {
	l := current()
	return l.Fatal()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

func build(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// -debug wins over -log_level
func (c Config) level() (zerolog.Level, error) {
	if c.Debug {
		return zerolog.DebugLevel, nil
	}
	if c.Level == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

func (c Config) writer() (io.Writer, error) {
	switch c.Output {
	case "", OutputStdout:
		return os.Stdout, nil
	case OutputStderr:
		return os.Stderr, nil
	case OutputConsole:
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}, nil
	default:
		return nil, fmt.Errorf("invalid log output %q, want %s, %s or %s", c.Output, OutputStdout, OutputStderr, OutputConsole)
	}
}
