package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Strip removes all ANSI escape sequences from the string.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Width returns the visual width of s in cells, ignoring escape codes.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// PadExact pads s with spaces to exactly w cells, truncating when longer.
func PadExact(s string, w int) string {
	if w <= 0 {
		return ""
	}
	vw := Width(s)
	if vw > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-vw)
}

// TruncateToWidth truncates to width with ellipsis if needed.
func TruncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// Center places s in the middle of a w-cell field.
func Center(s string, w int) string {
	vw := Width(s)
	if vw >= w {
		return TruncateToWidth(s, w)
	}
	left := (w - vw) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-vw-left)
}

// WrapLines wraps every line to width, preserving escape codes.
func WrapLines(lines []string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	out := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		out = append(out, strings.Split(ansi.Wrap(line, width, ""), "\n")...)
	}
	return out
}
