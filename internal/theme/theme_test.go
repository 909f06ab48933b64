package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MergesOverrides(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "theme.json"), []byte(`{"accentColor":"99"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	th := Load(dir, "dark")
	if th.AccentColor != "99" {
		t.Fatalf("expected override, got %q", th.AccentColor)
	}
	if th.BorderColor != Default().BorderColor {
		t.Fatalf("expected default border color kept, got %q", th.BorderColor)
	}
}

func TestLoad_MissingFileUsesBase(t *testing.T) {
	if Load(t.TempDir(), "light") != lightTheme() {
		t.Fatalf("expected light theme")
	}
}
