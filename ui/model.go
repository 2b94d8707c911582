// Package ui renders bridge results in the terminal.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
)

// ResultMsg carries a successful command result.
type ResultMsg struct {
	Command string
	Value   string
}

// FailureMsg carries a failed command outcome.
type FailureMsg struct {
	Command string
	Kind    string
	Message string
}

// Model is the root terminal model.
type Model struct {
	title   string
	command string
	result  *ResultMsg
	failure *FailureMsg
}

// NewModel creates a model waiting for command.
func NewModel(title, command string) Model {
	return Model{title: title, command: command}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case ResultMsg:
		m.result = &msg
		m.failure = nil
	case FailureMsg:
		m.failure = &msg
		m.result = nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	switch {
	case m.result != nil:
		b.WriteString(resultStyle.Render(m.result.Value))
	case m.failure != nil:
		b.WriteString(failureStyle.Render(fmt.Sprintf("%s failed (%s): %s", m.failure.Command, m.failure.Kind, m.failure.Message)))
	default:
		b.WriteString(statusStyle.Render(fmt.Sprintf("waiting for %s...", m.command)))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}
