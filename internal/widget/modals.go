package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/imagetool/internal/tui/ansi"
)

const crossLabel = "[×]"

// linkModal edits the link wrapped around the media. Enter saves the input
// and closes; the cross clears the link and keeps the dialog open.
type linkModal struct {
	w         *Widget
	input     textinput.Model
	lastWidth int
}

func newLinkModal(w *Widget) *linkModal {
	ti := textinput.New()
	ti.Placeholder = "https://"
	ti.Prompt = "> "
	ti.SetValue(w.link)
	return &linkModal{w: w, input: ti}
}

func (m *linkModal) Title() string { return "Link" }

func (m *linkModal) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			return m.save()
		case "ctrl+x":
			return m.cross()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *linkModal) save() tea.Cmd {
	url := strings.TrimSpace(m.input.Value())
	w := m.w
	w.link = url
	w.closeModal()
	if w.host == nil {
		return nil
	}
	return w.host.SetLink(url)
}

func (m *linkModal) cross() tea.Cmd {
	m.input.SetValue("")
	return m.w.clearLink()
}

// Click handles presses on the cross, drawn at the end of the first row.
func (m *linkModal) Click(x, y int) tea.Cmd {
	if y != 0 {
		return nil
	}
	if x >= m.crossX() {
		return m.cross()
	}
	return nil
}

func (m *linkModal) crossX() int {
	return m.lastWidth - lipgloss.Width(crossLabel)
}

func (m *linkModal) View(width int) string {
	m.lastWidth = width
	inputW := width - lipgloss.Width(crossLabel) - 1
	if inputW < 1 {
		inputW = 1
	}
	row := ansi.PadExact(m.input.View(), inputW) + " " + m.w.theme.Error(crossLabel)
	hint := m.w.theme.Faint("enter save · ctrl+x remove link")
	return row + "\n" + hint
}

// embedModal reads a URL and hands it to the host.
type embedModal struct {
	w     *Widget
	input textinput.Model
}

func newEmbedModal(w *Widget) *embedModal {
	ti := textinput.New()
	ti.Placeholder = "Paste an image or video URL"
	ti.Prompt = "> "
	return &embedModal{w: w, input: ti}
}

func (m *embedModal) Title() string {
	if m.w.cfg.EmbedButtonContent != "" {
		return m.w.cfg.EmbedButtonContent
	}
	return "Embed URL"
}

func (m *embedModal) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		url := strings.TrimSpace(m.input.Value())
		w := m.w
		w.closeModal()
		if url == "" || w.host == nil {
			return nil
		}
		return w.host.EmbedURL(url)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *embedModal) View(width int) string {
	return ansi.PadExact(m.input.View(), width) + "\n" + m.w.theme.Faint("enter embed")
}
