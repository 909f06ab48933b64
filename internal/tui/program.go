package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/logger"
	"github.com/interpretive-systems/imagetool/internal/storage"
	"github.com/interpretive-systems/imagetool/internal/widget"
)

var errNoStorage = errors.New("no upload storage configured")

// Options configures the host program.
type Options struct {
	Context   context.Context
	BlockPath string
	Data      block.Data
	Widget    widget.Config
	Deps      widget.Deps
	Uploader  storage.Uploader
	PickerDir string
}

// Program is the Bubble Tea model hosting one image widget. It implements
// widget.Host.
type Program struct {
	state      *State
	layout     *Layout
	keyHandler *KeyHandler
	widget     *widget.Widget
	picker     *Picker
	uploader   storage.Uploader
	ctx        context.Context
	log        *logger.Logger
	data       block.Data
}

// New builds the program. The widget is mounted on Init.
func New(opts Options) *Program {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Deps.Logger == nil {
		opts.Deps.Logger = logger.Discard()
	}
	opts.Deps.Context = opts.Context

	p := &Program{
		layout:     NewLayout(),
		keyHandler: NewKeyHandler(opts.Widget.ReadOnly),
		picker:     NewPicker(opts.PickerDir),
		uploader:   opts.Uploader,
		ctx:        opts.Context,
		log:        opts.Deps.Logger.Component("host"),
		data:       opts.Data,
	}
	opts.Deps.Host = p
	p.widget = widget.New(opts.Widget, opts.Deps)
	p.state = NewState(opts.BlockPath, opts.Data, opts.Widget.ReadOnly, p.widget.Theme())
	return p
}

// Run starts the program and returns the final block data.
func Run(opts Options) (block.Data, error) {
	p := New(opts)
	tp := tea.NewProgram(p, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(p.ctx))
	if _, err := tp.Run(); err != nil {
		return p.Data(), err
	}
	return p.Data(), nil
}

// Data returns the block data as currently shown.
func (p *Program) Data() block.Data {
	return p.widget.Data()
}

// Widget exposes the hosted widget.
func (p *Program) Widget() *widget.Widget {
	return p.widget
}

// SelectFile opens the file picker.
func (p *Program) SelectFile() tea.Cmd {
	p.state.Picking = true
	return p.picker.Open()
}

// EmbedURL shows url as preview and mounts it.
func (p *Program) EmbedURL(url string) tea.Cmd {
	p.log.WithField(logger.FieldURL, url).Info("embedding url")
	return tea.Sequence(
		msgCmd(widget.ShowPreloaderMsg{Src: url}),
		msgCmd(widget.FillImageMsg{URL: url}),
	)
}

// SetLink marks the block dirty. The link itself is persisted from the
// widget data.
func (p *Program) SetLink(url string) tea.Cmd {
	p.state.Dirty = true
	if url == "" {
		p.state.StatusBar.SetMessage("link removed")
	} else {
		p.state.StatusBar.SetMessage("link set")
	}
	return nil
}

func (p *Program) Init() tea.Cmd {
	return p.widget.Mount(p.data)
}

func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.state.Width, p.state.Height = msg.Width, msg.Height
		p.layout.SetSize(msg.Width, msg.Height)
		p.widget.SetSize(msg.Width, p.layout.BodyHeight(0))
		p.picker.Resize(tea.WindowSizeMsg{Width: msg.Width, Height: p.layout.BodyHeight(0)})
		return p, nil
	case uploadedMsg:
		p.state.Dirty = true
		p.state.StatusBar.SetMessage("uploaded " + filepath.Base(msg.path))
		p.log.WithFields(logger.Fields{"path": msg.path, logger.FieldURL: msg.url}).Info("upload finished")
		return p, p.widget.Update(widget.FillImageMsg{URL: msg.url})
	case widget.UploadFailedMsg:
		if msg.Err != nil {
			p.state.StatusBar.SetError(msg.Err.Error())
		}
		return p, p.widget.Update(msg)
	case savedMsg:
		if msg.err != nil {
			p.state.StatusBar.SetError(msg.err.Error())
			p.log.WithError(msg.err).Error("save failed")
			return p, nil
		}
		p.state.Dirty = false
		p.state.StatusBar.SetLastSaved(time.Now())
		p.state.StatusBar.SetMessage("saved " + filepath.Base(msg.path))
		return p, nil
	case tea.KeyMsg:
		return p, p.handleKey(msg)
	case tea.MouseMsg:
		if p.state.Picking || p.state.ShowHelp {
			return p, nil
		}
		msg.Y -= headerRows
		return p, p.widget.Update(msg)
	}

	if p.state.Picking {
		return p, tea.Batch(p.updatePicker(msg), p.widget.Update(msg))
	}
	return p, p.widget.Update(msg)
}

func (p *Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		p.state.Quitting = true
		return tea.Quit
	}
	if p.state.ShowHelp {
		switch msg.String() {
		case "q":
			p.state.Quitting = true
			return tea.Quit
		case "h", "?", "esc":
			p.state.ShowHelp = false
		}
		return nil
	}
	if p.state.Picking {
		if msg.Type == tea.KeyEsc {
			p.state.Picking = false
			return nil
		}
		return p.updatePicker(msg)
	}
	if p.widget.Capturing() {
		return p.widget.Update(msg)
	}

	switch p.keyHandler.Handle(msg) {
	case ActionQuit:
		p.state.Quitting = true
		return tea.Quit
	case ActionToggleHelp:
		p.state.ShowHelp = true
		return nil
	case ActionSave:
		if p.state.BlockPath == "" {
			p.state.StatusBar.SetError("no block file")
			return nil
		}
		return saveBlock(p.state.BlockPath, p.Data())
	}
	return p.widget.Update(msg)
}

func (p *Program) updatePicker(msg tea.Msg) tea.Cmd {
	path, cmd := p.picker.Update(msg)
	if path == "" {
		return cmd
	}
	p.state.Picking = false
	p.log.WithField("path", path).Info("file picked")
	return tea.Sequence(
		msgCmd(widget.ShowPreloaderMsg{Src: path}),
		uploadFile(p.ctx, p.uploader, path),
	)
}

func (p *Program) View() string {
	if p.state.Quitting {
		return ""
	}
	w, h := p.layout.Width(), p.layout.Height()
	if w <= 0 || h <= 0 {
		return ""
	}
	p.state.StatusBar.SetStatus(p.widget.Status().String())

	var overlay []string
	if p.state.ShowHelp {
		overlay = p.helpOverlayLines(w)
	}
	bodyH := p.layout.BodyHeight(len(overlay))

	var body string
	switch {
	case p.state.Picking:
		body = lipgloss.NewStyle().Bold(true).Render("Select a file") + "\n" + p.picker.View()
	case p.widget.ActiveModal() != nil:
		body = p.widget.Modals().Render(w, bodyH)
	default:
		body = p.widget.View(w)
	}

	return p.layout.RenderFrame(
		p.topLeftTitle(), p.topRightTitle(),
		strings.Split(body, "\n"),
		overlay,
		p.state.StatusBar.Render(w),
		p.state.Theme,
	)
}

func (p *Program) topLeftTitle() string {
	name := "untitled"
	if p.state.BlockPath != "" {
		name = filepath.Base(p.state.BlockPath)
	}
	if p.state.Dirty {
		name += " *"
	}
	return lipgloss.NewStyle().Bold(true).Render("Image") + " | " + name
}

func (p *Program) topRightTitle() string {
	if el := p.widget.Media(); el != nil {
		return p.state.Theme.Faint(el.Kind.String())
	}
	return ""
}

// helpOverlayLines returns the bottom overlay lines (without trailing newline).
func (p *Program) helpOverlayLines(width int) []string {
	title := lipgloss.NewStyle().Bold(true).Render("Help (press 'h' or Esc to close)")
	keys := []string{
		"f              Select a file to upload",
		"e              Embed a URL",
		"s              Search Unsplash",
		"l              Edit link",
		"t              Toggle caption / alt",
		"c / a          Edit caption / alt",
		"1 / 2 / 3      Toggle border / background / stretched",
		"w              Write block file",
		"q              Quit",
	}
	lines := make([]string, 0, 2+len(keys))
	lines = append(lines, strings.Repeat("─", width))
	lines = append(lines, title)
	lines = append(lines, keys...)
	return lines
}
