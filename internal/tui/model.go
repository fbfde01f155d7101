// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-15

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	doneStepStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStepStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// maxVisible is the number of issue rows and log lines shown at once.
const maxVisible = 8

// IssueStatusMsg reports that one issue has been processed.
type IssueStatusMsg struct {
	Number int
	Title  string
	Status string // "created", "updated", "skipped", "failed"
	// Message carries the failure, if any.
	Message string
}

// LogMsg is a single log line.
type LogMsg struct {
	Line string
}

// ResultMsg indicates the final result.
type ResultMsg struct {
	Success bool
	Output  string
}

// Model for the TUI.
type Model struct {
	spinner  spinner.Model
	title    string
	issues   []IssueStatusMsg
	counts   map[string]int
	logs     []string
	quitting bool
	done     bool
	err      error
	updates  <-chan tea.Msg
}

// NewModel creates a new TUI model fed by updates. Closing updates ends the
// program.
func NewModel(title string, updates <-chan tea.Msg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		spinner: s,
		title:   title,
		counts:  make(map[string]int),
		updates: updates,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case IssueStatusMsg:
		m.issues = append(m.issues, msg)
		m.counts[msg.Status]++
		return m, m.waitForActivity()

	case LogMsg:
		m.logs = append(m.logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg.Line))
		return m, m.waitForActivity()

	case ResultMsg:
		m.done = true
		if !msg.Success {
			m.err = fmt.Errorf("%s", msg.Output)
		}
		// Print the final output before quitting so the user can see the result
		if msg.Output != "" {
			fmt.Println("\n" + msg.Output)
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.updates
		if !ok {
			return ResultMsg{Success: true}
		}
		return msg
	}
}

// Counts returns how many issues reached each status.
func (m Model) Counts() map[string]int {
	return m.counts
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	s.WriteString("\n\n")

	start := 0
	if len(m.issues) > maxVisible {
		start = len(m.issues) - maxVisible
	}
	for _, issue := range m.issues[start:] {
		prefix := "  "
		style := stepStyle

		switch issue.Status {
		case "created", "updated":
			prefix = "✓ "
			style = doneStepStyle
		case "failed":
			prefix = "✗ "
			style = errorStepStyle
		case "skipped":
			prefix = "○ "
			style = stepStyle.Faint(true)
		}

		line := fmt.Sprintf("%s#%d %s (%s)", prefix, issue.Number, issue.Title, issue.Status)
		if issue.Message != "" {
			line += ": " + issue.Message
		}
		s.WriteString(style.Render(line) + "\n")
	}

	if !m.done {
		s.WriteString(m.spinner.View() + " syncing...\n")
	}

	s.WriteString(fmt.Sprintf("\ncreated %d · updated %d · skipped %d · failed %d\n",
		m.counts["created"], m.counts["updated"], m.counts["skipped"], m.counts["failed"]))

	if len(m.logs) > 0 {
		s.WriteString("\nLogs:\n")
		logStart := 0
		if len(m.logs) > maxVisible {
			logStart = len(m.logs) - maxVisible
		}
		for _, log := range m.logs[logStart:] {
			s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render(log) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + errorStepStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	s.WriteString(lipgloss.NewStyle().Foreground(subtleColor).Render("\nPress q to quit\n"))

	return s.String()
}
