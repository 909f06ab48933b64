package block

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Tune names understood by the widget.
const (
	TuneWithBorder     = "withBorder"
	TuneWithBackground = "withBackground"
	TuneStretched      = "stretched"
)

// Tunes lists every tune in display order.
var Tunes = []string{TuneWithBorder, TuneWithBackground, TuneStretched}

// File is the stored media reference.
type File struct {
	URL string `json:"url,omitempty"`
}

// Data is the persisted image block.
type Data struct {
	File           File   `json:"file"`
	Caption        string `json:"caption"`
	Alt            string `json:"alt"`
	WithBorder     bool   `json:"withBorder"`
	WithBackground bool   `json:"withBackground"`
	Stretched      bool   `json:"stretched"`
	Link           string `json:"link,omitempty"`
}

// HasSource reports whether a media reference was saved.
func (d Data) HasSource() bool {
	return d.File.URL != ""
}

// Tune returns the stored value of a tune.
func (d Data) Tune(name string) bool {
	switch name {
	case TuneWithBorder:
		return d.WithBorder
	case TuneWithBackground:
		return d.WithBackground
	case TuneStretched:
		return d.Stretched
	}
	return false
}

// SetTune stores a tune value. Unknown names are ignored.
func (d *Data) SetTune(name string, on bool) {
	switch name {
	case TuneWithBorder:
		d.WithBorder = on
	case TuneWithBackground:
		d.WithBackground = on
	case TuneStretched:
		d.Stretched = on
	}
}

// Load reads block data from path. A missing file yields an empty block.
func Load(path string) (Data, error) {
	var d Data
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("read block: %w", err)
	}
	if len(b) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return d, fmt.Errorf("decode block %s: %w", path, err)
	}
	return d, nil
}

// Save writes block data to path as indented JSON.
func Save(path string, d Data) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode block: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write block: %w", err)
	}
	return nil
}
