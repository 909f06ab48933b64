package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionSave
)

// KeyHandler maps host-level keys to actions. Keys it does not know are
// left to the widget.
type KeyHandler struct {
	readOnly bool
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler(readOnly bool) *KeyHandler {
	return &KeyHandler{readOnly: readOnly}
}

// Handle processes a key message and returns the action.
func (k *KeyHandler) Handle(msg tea.KeyMsg) KeyAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return ActionQuit
	case "h", "?":
		return ActionToggleHelp
	case "w", "ctrl+s":
		if k.readOnly {
			return ActionNone
		}
		return ActionSave
	default:
		return ActionNone
	}
}
