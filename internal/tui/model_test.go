// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-15
// Last Modified: 2026-10-15

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModelCountsStatuses(t *testing.T) {
	updates := make(chan tea.Msg)
	var m tea.Model = NewModel("Simili-Sync", updates)

	for _, msg := range []tea.Msg{
		IssueStatusMsg{Number: 1, Title: "Bug A", Status: "created"},
		IssueStatusMsg{Number: 2, Title: "Bug B", Status: "failed", Message: "boom"},
		IssueStatusMsg{Number: 3, Title: "Bug C", Status: "created"},
		LogMsg{Line: "Sync complete"},
	} {
		m, _ = m.Update(msg)
	}

	model := m.(Model)
	if model.Counts()["created"] != 2 || model.Counts()["failed"] != 1 {
		t.Errorf("unexpected counts %v", model.Counts())
	}

	view := model.View()
	for _, want := range []string{"Simili-Sync", "#2 Bug B (failed): boom", "created 2", "Sync complete"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q:\n%s", want, view)
		}
	}
}

func TestModelResultQuits(t *testing.T) {
	var m tea.Model = NewModel("Simili-Sync", nil)

	m, cmd := m.Update(ResultMsg{Success: false, Output: "fetch failed"})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if m.(Model).err == nil {
		t.Error("Expected failure to be recorded")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestWaitForActivityClosedChannel(t *testing.T) {
	updates := make(chan tea.Msg)
	close(updates)

	msg := NewModel("x", updates).waitForActivity()()
	if res, ok := msg.(ResultMsg); !ok || !res.Success {
		t.Errorf("Expected successful ResultMsg on close, got %#v", msg)
	}
}

func TestLogWriterSplitsLines(t *testing.T) {
	updates := make(chan tea.Msg, 4)
	w := NewLogWriter(updates)

	if _, err := w.Write([]byte("first\nsec")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if _, err := w.Write([]byte("ond\n\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	close(updates)

	var lines []string
	for msg := range updates {
		lines = append(lines, msg.(LogMsg).Line)
	}
	if strings.Join(lines, "|") != "first|second" {
		t.Errorf("unexpected lines %v", lines)
	}
}
