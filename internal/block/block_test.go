package block

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.HasSource() {
		t.Fatalf("expected empty block, got %+v", d)
	}
}

func TestLoad_ReadsEditorShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.json")
	raw := `{"file":{"url":"https://x/y.png"},"caption":"hi","alt":"a","withBorder":true,"withBackground":false,"stretched":true,"link":"https://l"}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !d.HasSource() || d.Caption != "hi" || d.Link != "https://l" {
		t.Fatalf("unexpected data %+v", d)
	}
	if !d.Tune(TuneWithBorder) || d.Tune(TuneWithBackground) || !d.Tune(TuneStretched) {
		t.Fatalf("unexpected tunes %+v", d)
	}

	d.SetTune(TuneWithBackground, true)
	if err := Save(path, d); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	again, err := Load(path)
	if err != nil || !again.WithBackground {
		t.Fatalf("expected saved tune, got %+v (%v)", again, err)
	}
}
