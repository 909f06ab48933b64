package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/imagetool/internal/catalog"
	"github.com/interpretive-systems/imagetool/internal/modal"
	"github.com/interpretive-systems/imagetool/internal/tui/ansi"
)

// Columns is the number of gallery columns.
const Columns = 3

const tileHeight = 2

// Distribute assigns result offsets to columns round-robin, in response
// order. Offset i lands in column i mod Columns.
func Distribute(n int) [Columns][]int {
	var cols [Columns][]int
	for i := 0; i < n; i++ {
		cols[i%Columns] = append(cols[i%Columns], i)
	}
	return cols
}

type hitKind int

const (
	hitTile hitKind = iota
	hitPrevious
	hitNext
)

type hit struct {
	rect  modal.Rect
	kind  hitKind
	index int
}

const (
	previousLabel = "‹ Previous"
	nextLabel     = "Next ›"
	noResults     = "No images found"
	loadingLabel  = "Searching…"
)

// paginationBar renders previous / label / next. Missing buttons become
// blank spacers of the same width so the label stays put.
func paginationBar(p catalog.Page, width, y int) (string, []hit) {
	btnW := lipgloss.Width(previousLabel)
	if w := lipgloss.Width(nextLabel); w > btnW {
		btnW = w
	}
	midW := width - 2*btnW
	if midW < 1 {
		midW = 1
	}
	button := lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	var hits []hit

	left := strings.Repeat(" ", btnW)
	if p.HasPrevious() {
		left = ansi.PadExact(button.Render(previousLabel), btnW)
		hits = append(hits, hit{rect: modal.Rect{X: 0, Y: y, W: btnW, H: 1}, kind: hitPrevious})
	}
	right := strings.Repeat(" ", btnW)
	if p.HasNext() {
		gap := btnW - lipgloss.Width(nextLabel)
		right = strings.Repeat(" ", gap) + button.Render(nextLabel)
		hits = append(hits, hit{rect: modal.Rect{X: btnW + midW + gap, Y: y, W: btnW - gap, H: 1}, kind: hitNext})
	}
	return left + ansi.Center(p.Label(), midW) + right, hits
}

// gallery renders results in Columns side-by-side columns starting at row y.
func gallery(results []catalog.Result, cursor, width, y int) ([]string, []hit) {
	colW := (width - (Columns - 1)) / Columns
	if colW < 4 {
		colW = 4
	}
	cols := Distribute(len(results))
	rendered := make([]string, 0, Columns)
	var hits []hit
	for c, offsets := range cols {
		lines := make([]string, 0, len(offsets)*tileHeight)
		for row, i := range offsets {
			lines = append(lines, tile(results[i], i == cursor, colW)...)
			hits = append(hits, hit{
				rect:  modal.Rect{X: c * (colW + 1), Y: y + row*tileHeight, W: colW, H: tileHeight},
				kind:  hitTile,
				index: i,
			})
		}
		block := lipgloss.NewStyle().Width(colW).Render(strings.Join(lines, "\n"))
		rendered = append(rendered, block)
		if c < Columns-1 {
			rendered = append(rendered, " ")
		}
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	return strings.Split(joined, "\n"), hits
}

func tile(r catalog.Result, selected bool, w int) []string {
	name := r.Author
	if name == "" {
		name = "untitled"
	}
	head := ansi.PadExact(ansi.TruncateToWidth("▣ "+name, w), w)
	thumb := ansi.PadExact(ansi.TruncateToWidth(r.Thumb, w), w)
	if selected {
		head = lipgloss.NewStyle().Reverse(true).Render(head)
	}
	return []string{head, lipgloss.NewStyle().Faint(true).Render(thumb)}
}
