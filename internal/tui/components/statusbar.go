package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	status    string
	message   string
	isError   bool
	lastSaved time.Time
	readOnly  bool
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetStatus updates the widget status label.
func (s *StatusBar) SetStatus(status string) {
	s.status = status
}

// SetMessage shows an informational message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError shows an error message.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// SetLastSaved updates the save timestamp.
func (s *StatusBar) SetLastSaved(t time.Time) {
	s.lastSaved = t
}

// SetReadOnly marks the session as read only.
func (s *StatusBar) SetReadOnly(v bool) {
	s.readOnly = v
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.message
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	leftText := "h: help"
	if s.readOnly {
		leftText += "  |  read only"
	}
	leftStyled := lipgloss.NewStyle().Faint(true).Render(leftText)
	if s.message != "" {
		st := lipgloss.NewStyle().Faint(true)
		if s.isError {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		}
		leftStyled += lipgloss.NewStyle().Faint(true).Render("  |  ") + st.Render(s.message)
	}

	rightText := "status: " + s.status
	if !s.lastSaved.IsZero() {
		rightText += "  saved: " + s.lastSaved.Format("15:04:05")
	}
	right := lipgloss.NewStyle().Faint(true).Render(rightText)

	// Ensure right part is always visible
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}

	avail := width - rightW - 1
	leftRendered := leftStyled
	if lipgloss.Width(leftRendered) > avail {
		leftRendered = ansi.Truncate(leftRendered, avail, "…")
	} else if lipgloss.Width(leftRendered) < avail {
		leftRendered = leftRendered + strings.Repeat(" ", avail-lipgloss.Width(leftRendered))
	}

	return leftRendered + " " + right
}
