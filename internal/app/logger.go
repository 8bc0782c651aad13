package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// logLevels maps the accepted -log-level values to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the app's isolated logger from the configured level and
// format. It never touches the global logger. The CLI validates these values
// before they get here, but programmatic callers construct Config directly,
// so unknown values are rejected rather than silently defaulted.
func newLogger(levelStr, formatStr string, outW io.Writer) (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(levelStr)]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q: must be 'debug', 'info', 'warn', or 'error'", levelStr)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(formatStr) {
	case "json":
		return slog.New(slog.NewJSONHandler(outW, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(outW, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q: must be 'text' or 'json'", formatStr)
	}
}
