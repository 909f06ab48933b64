package widget

import "github.com/interpretive-systems/imagetool/internal/media"

// Messages the host returns from its commands to push state into the
// widget. Each maps onto the setter of the same name.

// FillImageMsg sets the resolved media source.
type FillImageMsg struct{ URL string }

// FillCaptionMsg replaces the caption.
type FillCaptionMsg struct{ Text string }

// FillAltMsg replaces the alt text.
type FillAltMsg struct{ Text string }

// FillLinkMsg replaces the stored link; an empty URL clears it.
type FillLinkMsg struct{ URL string }

// ApplyTuneMsg toggles a block tune.
type ApplyTuneMsg struct {
	Name string
	On   bool
}

// ShowPreloaderMsg shows a preview while an upload is pending.
type ShowPreloaderMsg struct{ Src string }

// HidePreloaderMsg drops the preview and returns the widget to empty.
type HidePreloaderMsg struct{}

// UploadFailedMsg reports that the host could not upload or resolve a source.
type UploadFailedMsg struct{ Err error }

// readyMsg is the media ready signal for a mounted element.
type readyMsg struct {
	elementID int
	info      media.Info
	err       error
}
