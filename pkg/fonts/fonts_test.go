package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestCSSStacks(t *testing.T) {
	tests := map[Family]string{
		Sans:  `Helvetica, Arial, sans-serif`,
		Serif: `"Times New Roman", Times, serif`,
		Mono:  `Courier, monospace`,
	}
	for f, want := range tests {
		if got := f.CSS(); got != want {
			t.Errorf("%s.CSS() = %s, want %s", f, got, want)
		}
	}
}

func TestEmbeddedSelection(t *testing.T) {
	if !bytes.Equal(Default.Data(Sans, 400), goregular.TTF) {
		t.Error("sans 400 should use Go Regular")
	}
	if !bytes.Equal(Default.Data(Serif, 700), gobold.TTF) {
		t.Error("serif 700 should fall back to Go Bold")
	}
	if !bytes.Equal(Default.Data(Mono, 300), gomono.TTF) {
		t.Error("mono 300 should use Go Mono")
	}
}

func TestFontParsesOnce(t *testing.T) {
	s := &Set{}
	a, err := s.Font(Sans, 400)
	if err != nil {
		t.Fatalf("Font: %v", err)
	}
	b, _ := s.Font(Sans, 400)
	if a != b {
		t.Error("Font should return the cached parse")
	}
	if a.NumGlyphs() == 0 {
		t.Error("parsed font has no glyphs")
	}
}

func TestLoadSetOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "serif.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSet(Paths{Serif: path})
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if !bytes.Equal(s.Data(Serif, 400), gomono.TTF) {
		t.Error("serif regular should use override")
	}
	if !bytes.Equal(s.Data(Serif, 800), gobold.TTF) {
		t.Error("serif bold has no override and should stay embedded")
	}
}

func TestLoadSetErrors(t *testing.T) {
	if _, err := LoadSet(Paths{Sans: "/does/not/exist.ttf"}); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.ttf")
	os.WriteFile(bad, []byte("not a font"), 0o644)
	if _, err := LoadSet(Paths{Mono: bad}); err == nil {
		t.Error("invalid font data should fail")
	}
}
