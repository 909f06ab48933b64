package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

type staticContent struct{ text string }

func (s staticContent) Title() string            { return "Test" }
func (s staticContent) Update(tea.Msg) tea.Cmd   { return nil }
func (s staticContent) View(width int) string    { return s.text }

func TestManager_CloseIsIdempotent(t *testing.T) {
	m := NewManager()
	h := m.Open(staticContent{"hello"})
	if m.Active() != h {
		t.Fatalf("expected opened handle to be active")
	}
	m.Close(h)
	m.Close(h)
	if !h.Closed() || m.Active() != nil || m.OpenCount() != 0 {
		t.Fatalf("expected modal disposed")
	}
	m.Close(nil)
}

func TestManager_RenderCentersPanel(t *testing.T) {
	m := NewManager()
	m.Open(staticContent{"hello"})
	out := ansi.Strip(m.Render(80, 20))
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("expected full-height layer, got %d lines", len(lines))
	}
	if !strings.Contains(out, "Test") || !strings.Contains(out, "hello") {
		t.Fatalf("expected title and body, got %q", out)
	}
	p := m.Panel()
	if p.W == 0 || p.H == 0 || p.X <= 0 || p.Y <= 0 {
		t.Fatalf("unexpected panel rect %+v", p)
	}
}

func TestManager_ClickOutsideCloses(t *testing.T) {
	m := NewManager()
	h := m.Open(staticContent{"hello"})
	m.Render(80, 20)
	p := m.Panel()

	inside := tea.MouseMsg{X: p.X + 1, Y: p.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if m.HandleMouse(inside) || h.Closed() {
		t.Fatalf("click inside panel must not close")
	}
	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !m.HandleMouse(outside) || !h.Closed() {
		t.Fatalf("click on dismiss layer must close")
	}
}
