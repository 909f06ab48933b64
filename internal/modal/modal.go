package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/imagetool/internal/tui/ansi"
)

// Content is what a modal panel shows.
type Content interface {
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View(width int) string
}

// Handle references an opened modal.
type Handle struct {
	id      int
	content Content
	closed  bool
}

// Content returns the panel content.
func (h *Handle) Content() Content { return h.content }

// Closed reports whether the modal was disposed.
func (h *Handle) Closed() bool { return h == nil || h.closed }

// Rect is a cell rectangle on screen.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Manager renders modals over a full-screen dismiss layer. It does not
// enforce exclusivity: callers close the active handle before opening
// another.
type Manager struct {
	open  []*Handle
	seq   int
	panel Rect

	BorderColor string
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{BorderColor: "63"}
}

// Open shows content and returns its handle.
func (m *Manager) Open(content Content) *Handle {
	m.seq++
	h := &Handle{id: m.seq, content: content}
	m.open = append(m.open, h)
	return h
}

// Close disposes h. Closing a closed or foreign handle is a no-op.
func (m *Manager) Close(h *Handle) {
	if h == nil || h.closed {
		return
	}
	h.closed = true
	for i, o := range m.open {
		if o == h {
			m.open = append(m.open[:i], m.open[i+1:]...)
			break
		}
	}
	if len(m.open) == 0 {
		m.panel = Rect{}
	}
}

// Active returns the most recently opened live handle, or nil.
func (m *Manager) Active() *Handle {
	if len(m.open) == 0 {
		return nil
	}
	return m.open[len(m.open)-1]
}

// OpenCount returns the number of live handles.
func (m *Manager) OpenCount() int {
	return len(m.open)
}

// Panel returns the rectangle of the last rendered panel.
func (m *Manager) Panel() Rect {
	return m.panel
}

// HandleMouse closes the active modal when a press lands on the dismiss
// layer. Presses inside the panel are left to the content.
func (m *Manager) HandleMouse(msg tea.MouseMsg) bool {
	h := m.Active()
	if h == nil {
		return false
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	if m.panel.Contains(msg.X, msg.Y) {
		return false
	}
	m.Close(h)
	return true
}

// Render draws the active modal centered on a width x height layer.
func (m *Manager) Render(width, height int) string {
	h := m.Active()
	if h == nil || width <= 0 || height <= 0 {
		return ""
	}

	panelW := width * 3 / 4
	if panelW > 96 {
		panelW = 96
	}
	if panelW < 20 {
		panelW = width
	}
	innerW := panelW - 4 // border + padding
	if innerW < 1 {
		innerW = 1
	}
	title := lipgloss.NewStyle().Bold(true).Render(h.content.Title())
	body := h.content.View(innerW)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.BorderColor)).
		Padding(0, 1).
		Width(panelW - 2).
		Render(title + "\n" + body)

	lines := strings.Split(panel, "\n")
	w := lipgloss.Width(panel)
	x := (width - w) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(lines)) / 2
	if y < 0 {
		y = 0
	}
	m.panel = Rect{X: x, Y: y, W: w, H: len(lines)}

	hint := lipgloss.NewStyle().Faint(true).Render("esc or click outside to close")
	out := make([]string, 0, height)
	for i := 0; i < height; i++ {
		switch {
		case i >= y && i < y+len(lines):
			out = append(out, ansi.PadExact(strings.Repeat(" ", x)+lines[i-y], width))
		case i == height-1:
			out = append(out, ansi.PadExact(hint, width))
		default:
			out = append(out, strings.Repeat(" ", width))
		}
	}
	return strings.Join(out, "\n")
}
