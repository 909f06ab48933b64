package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/media"
	"github.com/interpretive-systems/imagetool/internal/status"
	"github.com/interpretive-systems/imagetool/internal/tui/ansi"
)

const (
	captionLabel = "CAPTION"
	altLabel     = "ALT"
)

// View renders the block for width columns.
func (w *Widget) View(width int) string {
	if width <= 0 {
		width = w.width
	}
	if width <= 0 {
		width = 80
	}
	boxW := width
	if !w.tunes[block.TuneStretched] && width > 60 {
		boxW = width * 2 / 3
	}

	box := w.theme.Box(boxW, w.tunes[block.TuneWithBorder], w.tunes[block.TuneWithBackground])
	inner := boxW
	if w.tunes[block.TuneWithBorder] {
		inner -= 2
	}
	if w.tunes[block.TuneWithBackground] {
		inner -= 2
	}
	if inner < 1 {
		inner = 1
	}

	sections := []string{box.Render(w.mediaView(inner))}
	if w.link != "" {
		sections = append(sections, w.theme.Faint("↪ "+ansi.TruncateToWidth(w.link, width-2)))
	}
	sections = append(sections, w.fieldView(width))
	if refs := links(w.caption.Value()); len(refs) > 0 && !w.showAlt && w.editing == fieldNone {
		for _, r := range refs {
			sections = append(sections, w.theme.Faint("  "+ansi.TruncateToWidth(r, width-2)))
		}
	}
	if w.lastErr != "" {
		sections = append(sections, w.theme.Error(ansi.TruncateToWidth("upload failed: "+w.lastErr, width)))
	}
	return strings.Join(sections, "\n")
}

func (w *Widget) mediaView(width int) string {
	switch w.status.Current() {
	case status.Uploading:
		src := w.preview
		if src == "" {
			if el := w.slot.Current(); el != nil {
				src = el.Src
			}
		}
		lines := []string{
			w.theme.Accent("Loading…"),
			w.theme.Faint(ansi.TruncateToWidth(src, width)),
		}
		return centerLines(lines, width)
	case status.Filled:
		el := w.slot.Current()
		if el == nil {
			return centerLines([]string{w.theme.Faint("no media")}, width)
		}
		return centerLines(elementLines(el, width, w.theme.Faint), width)
	}
	return w.buttonsView(width)
}

func elementLines(el *media.Element, width int, faint func(string) string) []string {
	var head string
	switch el.Kind {
	case media.KindVideo:
		attrs := el.Attributes()
		var flags []string
		if attrs.Autoplay {
			flags = append(flags, "autoplay")
		}
		if attrs.Loop {
			flags = append(flags, "loop")
		}
		if attrs.Muted {
			flags = append(flags, "muted")
		}
		if attrs.PlaysInline {
			flags = append(flags, "playsinline")
		}
		head = "▶ video " + faint("("+strings.Join(flags, " ")+")")
	default:
		head = "▣ image"
		if el.Info.Width > 0 {
			head += " " + faint(fmt.Sprintf("%s %dx%d", el.Info.Format, el.Info.Width, el.Info.Height))
		}
	}
	return []string{head, faint(ansi.TruncateToWidth(el.Src, width))}
}

func (w *Widget) buttonsView(width int) string {
	if w.cfg.ReadOnly {
		return centerLines([]string{w.theme.Faint("No image")}, width)
	}
	upload := w.cfg.UploadButtonContent
	if upload == "" {
		upload = "Select an Image"
	}
	embed := w.cfg.EmbedButtonContent
	if embed == "" {
		embed = "Embed URL"
	}
	catalog := w.cfg.Catalog.ButtonContent
	if catalog == "" {
		catalog = "Unsplash"
	}
	btn := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(w.theme.AccentColor)).
		Padding(0, 1)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		btn.Render("f "+upload), " ",
		btn.Render("e "+embed), " ",
		btn.Render("s "+catalog),
	)
	return centerLines(strings.Split(row, "\n"), width)
}

func (w *Widget) fieldView(width int) string {
	active, inactive := captionLabel, altLabel
	field := w.caption
	if w.showAlt {
		active, inactive = altLabel, captionLabel
		field = w.alt
	}
	toggler := w.theme.Accent(active) + w.theme.Faint("|"+inactive)
	togglerW := lipgloss.Width(toggler)

	var body string
	switch {
	case w.editing != fieldNone:
		body = field.View()
	case field.Value() == "":
		body = w.theme.Faint(field.Placeholder)
	case w.showAlt:
		body = field.Value()
	default:
		body = PlainText(field.Value())
	}
	bodyW := width - togglerW - 1
	if bodyW < 1 {
		bodyW = 1
	}
	return ansi.PadExact(body, bodyW) + " " + toggler
}

func centerLines(lines []string, width int) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ansi.Center(ansi.TruncateToWidth(l, width), width)
	}
	return strings.Join(out, "\n")
}
