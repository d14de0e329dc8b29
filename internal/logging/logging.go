package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/healthsync/healthsync/internal/config"
)

// Setup initializes the logger with file and stdout output. An unwritable
// log directory or file degrades to stdout-only logging with a warning; it
// never fails the run.
func Setup(level, directory string) *slog.Logger {
	if directory == "" {
		directory = config.ExpandHome("~/.healthsync/logs/")
	} else {
		directory = config.ExpandHome(directory)
	}

	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	writer, fileErr := openLogFile(directory)

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)

	if fileErr != nil {
		logger.Warn("cannot write log file, logging to stdout only",
			"directory", directory, "error", fileErr)
	}
	return logger
}

// openLogFile opens today's log file for appending. On any failure the
// returned writer is stdout alone.
func openLogFile(directory string) (io.Writer, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return os.Stdout, fmt.Errorf("creating log directory: %w", err)
	}

	filename := fmt.Sprintf("healthsync-%s.log", time.Now().Format("2006-01-02"))
	logPath := filepath.Join(directory, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stdout, fmt.Errorf("opening log file: %w", err)
	}

	return io.MultiWriter(os.Stdout, file), nil
}
