/*
Package ui renders the chat view in the terminal.

This file defines the bubbletea Model: a roster sidebar, a scrolling message
thread, and a composer line. The model holds no protocol state of its own; it
forwards events to the session and re-projects whenever the session reports a
change. Inbound frames are injected into the update loop as messages, so the
session is only ever touched from the single Update goroutine.
*/
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clack/internal/app/session"
	"clack/internal/app/view"
)

const sidebarWidth = 24

// FrameMsg carries one inbound transport frame into the update loop.
type FrameMsg string

// DisconnectedMsg signals that the transport connection was lost.
type DisconnectedMsg struct{}

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	senderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	imageStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("135"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for the chat view.
type Model struct {
	session *session.Session

	// current projections, recomputed after every state change.
	view view.View

	input     textinput.Model
	thread    viewport.Model
	width     int
	height    int
	ready     bool
	connected bool
}

// New constructs the chat view model around an existing session.
func New(sess *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 0
	input.Focus()

	return Model{
		session:   sess,
		view:      view.Project(sess.State()),
		input:     input,
		connected: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.session.Submit(m.input.Value()) {
				m.input.SetValue("")
			}
			return m, nil
		}

	case FrameMsg:
		if m.session.HandleFrame(string(msg)) {
			m.view = view.Project(m.session.State())
			m.refreshThread()
		}
		return m, nil

	case DisconnectedMsg:
		m.connected = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// layout resizes the thread viewport to the current window, reserving room
// for the header, composer, and status line.
func (m *Model) layout() {
	threadWidth := m.width - sidebarWidth - 3
	threadHeight := m.height - 4
	if threadWidth < 1 {
		threadWidth = 1
	}
	if threadHeight < 1 {
		threadHeight = 1
	}

	if !m.ready {
		m.thread = viewport.New(threadWidth, threadHeight)
		m.ready = true
	} else {
		m.thread.Width = threadWidth
		m.thread.Height = threadHeight
	}

	m.input.Width = threadWidth - 2
	m.refreshThread()
}

// refreshThread rebuilds the viewport content from the thread projection and
// keeps the latest message in view.
func (m *Model) refreshThread() {
	if !m.ready {
		return
	}

	lines := make([]string, 0, len(m.view.Thread))
	for _, entry := range m.view.Thread {
		body := entry.Message
		if entry.IsImage {
			body = imageStyle.Render("[image] " + entry.Message)
		}
		lines = append(lines, fmt.Sprintf("%s %s", senderStyle.Render(entry.From+":"), body))
	}

	m.thread.SetContent(strings.Join(lines, "\n"))
	m.thread.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "connecting..."
	}

	var sidebar strings.Builder
	sidebar.WriteString(titleStyle.Render("Users"))
	sidebar.WriteString("\n\n")
	for _, entry := range m.view.Roster {
		sidebar.WriteString(entry.Name)
		sidebar.WriteString("\n")
		sidebar.WriteString(statusStyle.Render("  Online"))
		sidebar.WriteString("\n")
	}

	status := statusStyle.Render(fmt.Sprintf("%s · %d online", m.session.Username(), len(m.view.Roster)))
	if !m.connected {
		status = lostStyle.Render("connection lost")
	}

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Chat"),
		m.thread.View(),
		m.input.View(),
		status,
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarStyle.Height(m.height).Render(sidebar.String()),
		main,
	)
}
