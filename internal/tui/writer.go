// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package tui

import (
	"bytes"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LogWriter turns written text into LogMsg updates, one per line, so a
// logger can feed the TUI log pane.
type LogWriter struct {
	updates chan<- tea.Msg
	buf     bytes.Buffer
}

// NewLogWriter returns a LogWriter sending to updates.
func NewLogWriter(updates chan<- tea.Msg) *LogWriter {
	return &LogWriter{updates: updates}
}

func (w *LogWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			w.updates <- LogMsg{Line: line}
		}
	}
	return len(p), nil
}
