package tui

// uploadedMsg carries the stored URL of a picked file.
type uploadedMsg struct {
	path string
	url  string
}

// savedMsg reports the result of writing the block file.
type savedMsg struct {
	path string
	err  error
}
