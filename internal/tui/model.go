package tui

import (
	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/theme"
	"github.com/interpretive-systems/imagetool/internal/tui/components"
)

// State holds the host application state around the widget.
type State struct {
	// Block file
	BlockPath string
	ReadOnly  bool
	Dirty     bool

	// UI State
	Width    int
	Height   int
	ShowHelp bool
	Picking  bool
	Quitting bool

	// Components
	StatusBar *components.StatusBar

	// Theme
	Theme theme.Theme
}

// NewState creates initial application state.
func NewState(path string, data block.Data, readOnly bool, th theme.Theme) *State {
	sb := components.NewStatusBar()
	sb.SetReadOnly(readOnly)
	return &State{
		BlockPath: path,
		ReadOnly:  readOnly,
		StatusBar: sb,
		Theme:     th,
	}
}
