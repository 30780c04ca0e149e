// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnioc/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gnioc.log"

// Init initializes the global slog logger with the given configuration.
// When destination is "file", log records are appended to LogFile in
// logDir. The returned closer releases the log file and is never nil.
func Init(logDir string, cfg config.LogConfig) (io.Closer, error) {
	var writer io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.OpenFile(
			logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
		)
		if err != nil {
			return closer, CreateLogFileError(logPath, err)
		}
		writer = file
		closer = file
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text", "tint":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
