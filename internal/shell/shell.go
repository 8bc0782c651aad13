// Package shell is the single place where shipgridgo touches os/exec. Every
// built-in step module that delegates to an external tool (pip, npm, the
// NLTK downloader, Django's manage.py) goes through Run, so streaming,
// environment handling, and exit-code reporting behave the same everywhere.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/vk/shipgridgo/internal/ctxlog"
)

// Command describes a single external tool invocation.
type Command struct {
	// Name is the executable to run, resolved via PATH if not absolute.
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra KEY=VALUE pairs appended to the process environment.
	Env []string
}

// String renders the command roughly as a user would type it.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// ExitError reports a command that started but exited non-zero.
type ExitError struct {
	Cmd  string
	Code int
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Cmd, e.Code)
}

// Run executes the command, streaming its stdout and stderr line by line
// into the context logger. The tool's own output is surfaced verbatim; there
// is no retry and no output capture beyond logging. A non-zero exit is
// returned as *ExitError so callers can distinguish it from a failure to
// start the process at all.
func Run(ctx context.Context, c Command) error {
	logger := ctxlog.FromContext(ctx).With("cmd", c.Name)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	stdout := newLogWriter(logger, slog.LevelInfo)
	stderr := newLogWriter(logger, slog.LevelWarn)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Info("Running external command.", "args", c.Args, "dir", c.Dir)

	err := cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err != nil {
		// Prefer a context error so timeouts read as timeouts, not signals.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("command %q aborted: %w", c.String(), ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Cmd: c.String(), Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to start command %q: %w", c.String(), err)
	}

	logger.Debug("External command finished.", "args", c.Args)
	return nil
}

// logWriter adapts an io.Writer into per-line slog records. External tools
// write in arbitrary chunks, so partial lines are buffered until a newline
// or a final Flush.
type logWriter struct {
	logger *slog.Logger
	level  slog.Level
	buf    bytes.Buffer
}

func newLogWriter(logger *slog.Logger, level slog.Level) *logWriter {
	return &logWriter{logger: logger, level: level}
}

// Write implements io.Writer.
func (w *logWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, put it back and wait for more.
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	if line == "" {
		return
	}
	w.logger.Log(context.Background(), w.level, line)
}
