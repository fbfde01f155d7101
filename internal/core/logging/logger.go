// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

// Package logging provides the logging port used across simili-sync.
// Components receive a Logger instead of writing to a global log so they can
// run silently in tests and emit workflow commands inside GitHub Actions.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/charmbracelet/lipgloss"
)

// Logger is a leveled logger with support for visually grouped sections.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// Group opens a titled section. The returned function closes it.
	Group(title string) (end func())

	// With returns a Logger that attaches key/value to every record.
	With(key string, value any) Logger
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
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

var groupStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#ff7300")).
	Bold(true)

// console writes slog text records through clog and renders group headers
// with lipgloss.
type console struct {
	w   io.Writer
	log *clog.Logger
}

// NewConsole returns a Logger writing human-readable records to w.
func NewConsole(w io.Writer, level slog.Level) Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &console{w: w, log: clog.New(h)}
}

func (c *console) Debugf(format string, args ...any) { c.log.Debugf(format, args...) }
func (c *console) Infof(format string, args ...any) { c.log.Infof(format, args...) }
func (c *console) Warnf(format string, args ...any) { c.log.Warnf(format, args...) }
func (c *console) Errorf(format string, args ...any) { c.log.Errorf(format, args...) }

func (c *console) Group(title string) func() {
	fmt.Fprintln(c.w, groupStyle.Render("▸ "+title))
	return func() {
		fmt.Fprintln(c.w)
	}
}

func (c *console) With(key string, value any) Logger {
	return &console{w: c.w, log: c.log.With(key, value)}
}

type nop struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

func (nop) Debugf(string, ...any) {}
func (nop) Infof(string, ...any) {}
func (nop) Warnf(string, ...any) {}
func (nop) Errorf(string, ...any) {}
func (nop) Group(string) func() { return func() {} }
func (n nop) With(string, any) Logger { return n }
