package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/storage"
	"github.com/interpretive-systems/imagetool/internal/widget"
)

// uploadTimeout bounds a single upload.
const uploadTimeout = 2 * time.Minute

// uploadFile stores path and reports the resulting URL, or an upload failure
// that returns the widget to empty.
func uploadFile(ctx context.Context, up storage.Uploader, path string) tea.Cmd {
	return func() tea.Msg {
		if up == nil {
			return widget.UploadFailedMsg{Err: errNoStorage}
		}
		ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
		defer cancel()
		url, err := up.Upload(ctx, path)
		if err != nil {
			return widget.UploadFailedMsg{Err: err}
		}
		return uploadedMsg{path: path, url: url}
	}
}

// saveBlock writes the block data to path.
func saveBlock(path string, d block.Data) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: block.Save(path, d)}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
