// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// actions emits GitHub Actions workflow commands so warnings and errors show
// up as annotations and groups fold in the job log.
type actions struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	suffix string
}

// NewActions returns a Logger that writes GitHub Actions workflow commands.
func NewActions(w io.Writer, level slog.Level) Logger {
	return &actions{mu: &sync.Mutex{}, w: w, level: level}
}

// IsCI reports whether the process runs in a CI environment.
func IsCI() bool {
	return os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
}

// New picks the Actions logger inside GitHub Actions and the console logger
// everywhere else.
func New(w io.Writer, level slog.Level) Logger {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return NewActions(w, level)
	}
	return NewConsole(w, level)
}

func (a *actions) Debugf(format string, args ...any) {
	a.emit(slog.LevelDebug, "::debug::", format, args)
}

func (a *actions) Infof(format string, args ...any) {
	a.emit(slog.LevelInfo, "", format, args)
}

func (a *actions) Warnf(format string, args ...any) {
	a.emit(slog.LevelWarn, "::warning::", format, args)
}

func (a *actions) Errorf(format string, args ...any) {
	a.emit(slog.LevelError, "::error::", format, args)
}

func (a *actions) Group(title string) func() {
	a.write("::group::" + escapeData(title))
	return func() {
		a.write("::endgroup::")
	}
}

func (a *actions) With(key string, value any) Logger {
	return &actions{
		mu:     a.mu,
		w:      a.w,
		level:  a.level,
		suffix: fmt.Sprintf("%s %s=%v", a.suffix, key, value),
	}
}

func (a *actions) emit(level slog.Level, prefix, format string, args []any) {
	if level < a.level {
		return
	}
	// Plain lines are escaped too, or an embedded "\n::" would start a command.
	a.write(prefix + escapeData(fmt.Sprintf(format, args...)+a.suffix))
}

func (a *actions) write(line string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintln(a.w, line)
}

// escapeData escapes a workflow command payload.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
