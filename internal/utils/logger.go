package utils

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a slog logger for cfg. With a file set, output goes to
// a size-rotated file instead of stderr.
func NewLogger(cfg LogConfig) (*slog.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if strings.TrimSpace(cfg.File) != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	}
	return slog.New(newHandler(w, cfg.Level, cfg.Format)), closer
}

// SetupLogger installs the logger for cfg as the slog and std log default.
func SetupLogger(cfg LogConfig) (*slog.Logger, io.Closer) {
	logger, closer := NewLogger(cfg)
	slog.SetDefault(logger)
	if strings.EqualFold(cfg.Format, "json") {
		log.SetFlags(0)
	}
	return logger, closer
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel maps debug|info|warn|error to a slog level; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
