package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/imagetool/internal/theme"
)

// headerRows is the number of rows above the body: top bar and rule.
const headerRows = 2

// Layout manages screen layout calculations.
type Layout struct {
	width  int
	height int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// BodyHeight returns the rows available between the header and the bottom
// rule and bar, minus overlay rows.
func (l *Layout) BodyHeight(overlayHeight int) int {
	h := l.height - headerRows - 2 - overlayHeight
	if h < 1 {
		h = 1
	}
	return h
}

// RenderFrame renders the top bar, the body, an optional bottom overlay and
// the status bar.
func (l *Layout) RenderFrame(
	topLeft, topRight string,
	bodyLines []string,
	overlayLines []string,
	bottomBar string,
	th theme.Theme,
) string {
	var b strings.Builder

	b.WriteString(l.renderTopBar(topLeft, topRight))
	b.WriteByte('\n')
	b.WriteString(th.Faint(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	bodyH := l.BodyHeight(len(overlayLines))
	for i := 0; i < bodyH; i++ {
		var line string
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		b.WriteString(padToWidth(line, l.width))
		b.WriteByte('\n')
	}

	for _, line := range overlayLines {
		b.WriteString(padToWidth(line, l.width))
		b.WriteByte('\n')
	}

	b.WriteString(strings.Repeat("─", l.width))
	b.WriteByte('\n')
	b.WriteString(bottomBar)

	return b.String()
}

func (l *Layout) renderTopBar(left, right string) string {
	rightW := lipgloss.Width(right)
	if rightW >= l.width {
		return ansi.Truncate(right, l.width, "…")
	}

	avail := l.width - rightW - 1
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left = left + strings.Repeat(" ", avail-lipgloss.Width(left))
	}

	return left + " " + right
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
