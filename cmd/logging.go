package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// logFormat selects the slog handler.
type logFormat int

const (
	logText logFormat = iota
	logJSON
)

func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("ADAPTIQ_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// newLogger builds the process logger and installs it as the slog default.
// ADAPTIQ_LOG_FILE redirects output to a file; otherwise logs go to
// fallback. The returned func closes the file.
func newLogger(format logFormat, fallback io.Writer) (*slog.Logger, func(), error) {
	w := fallback
	closeFn := func() {}
	if path := os.Getenv("ADAPTIQ_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	opts := &slog.HandlerOptions{Level: logLevel()}
	var h slog.Handler
	if format == logJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
