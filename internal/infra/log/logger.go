package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"guild/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
}

// New creates and initializes slog.Logger writing to the configured log file.
// If the file cannot be opened the logger falls back to stderr, since losing
// log lines must never stop the roster from working.
func New(params Params) (*slog.Logger, error) {
	sink, closeSink := openSink(params.Config.Env.Log.File)

	logger, err := newLogger(sink, params.Config.Env.Log)
	if err != nil {
		_ = closeSink()

		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeSink()
		},
	})

	return logger, nil
}

// newLogger builds the logger for w from the log settings.
func newLogger(w io.Writer, cfg config.Log) (*slog.Logger, error) {
	// Parse log level from config
	level, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var logger *slog.Logger
	if cfg.Pretty {
		logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	} else {
		logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	return logger, nil
}

// openSink opens path for appending. An empty path, or one that cannot be
// opened, yields stderr.
func openSink(path string) (io.Writer, func() error) {
	noop := func() error { return nil }
	if strings.TrimSpace(path) == "" {
		return os.Stderr, noop
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("cannot open log file, logging to stderr", slog.String("path", path), slog.Any("error", err))

		return os.Stderr, noop
	}

	return file, func() error {
		return errors.WithStack(file.Close())
	}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
