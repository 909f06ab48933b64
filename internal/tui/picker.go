package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// mediaTypes are the extensions offered by the file picker.
var mediaTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".mp4"}

// Picker is the file selection overlay opened by the widget's upload action.
type Picker struct {
	fp filepicker.Model
}

// NewPicker creates a picker rooted at dir, or the working directory.
func NewPicker(dir string) *Picker {
	fp := filepicker.New()
	fp.AllowedTypes = mediaTypes
	fp.AutoHeight = true
	fp.ShowHidden = false
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	return &Picker{fp: fp}
}

// Open reads the current directory.
func (p *Picker) Open() tea.Cmd {
	return p.fp.Init()
}

// Resize keeps the picker height in step with the window while closed.
func (p *Picker) Resize(msg tea.WindowSizeMsg) {
	p.fp, _ = p.fp.Update(msg)
}

// Update forwards msg and reports a chosen file.
func (p *Picker) Update(msg tea.Msg) (string, tea.Cmd) {
	var cmd tea.Cmd
	p.fp, cmd = p.fp.Update(msg)
	if ok, path := p.fp.DidSelectFile(msg); ok {
		return path, cmd
	}
	return "", cmd
}

// View renders the picker.
func (p *Picker) View() string {
	return p.fp.View()
}
