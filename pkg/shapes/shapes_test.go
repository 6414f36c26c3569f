package shapes

import (
	"strings"
	"testing"
)

const sampleSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 200 100">
  <!-- ignored comment -->
  <circle cx="50" cy="50" r="40" fill="#000"/>
  <g transform="translate(10 10)"><rect width="5" height="5"/></g>
  text between elements is ignored
  <use xlink:href="#a" data-label="a &amp; b"/>
</svg>`

func TestParseTopLevelChildren(t *testing.T) {
	lib, err := Parse(strings.NewReader(sampleSVG))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.ViewBox != "0 0 200 100" {
		t.Errorf("ViewBox = %q", lib.ViewBox)
	}
	if lib.Len() != 3 {
		t.Fatalf("Len = %d, want 3", lib.Len())
	}

	wantNames := []string{"circle", "g", "use"}
	for i, want := range wantNames {
		if got := lib.At(i).Name; got != want {
			t.Errorf("template %d name = %q, want %q", i, got, want)
		}
	}

	if got := lib.At(0).Markup; got != `<circle cx="50" cy="50" r="40" fill="#000"/>` {
		t.Errorf("circle markup = %s", got)
	}
	if got := lib.At(1).Markup; got != `<g transform="translate(10 10)"><rect width="5" height="5"/></g>` {
		t.Errorf("group markup = %s", got)
	}
	use := lib.At(2).Markup
	if !strings.Contains(use, `xlink:href="#a"`) {
		t.Errorf("xlink prefix lost: %s", use)
	}
	if !strings.Contains(use, `data-label="a &amp; b"`) {
		t.Errorf("attribute not re-escaped: %s", use)
	}
}

func TestParseDefaultViewBox(t *testing.T) {
	lib, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.ViewBox != DefaultViewBox {
		t.Errorf("ViewBox = %q, want default", lib.ViewBox)
	}
}

func TestParseEmptySVG(t *testing.T) {
	lib, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if lib.Len() != 0 {
		t.Errorf("Len = %d, want 0", lib.Len())
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"not xml":      "this is not svg",
		"wrong root":   `<html><body/></html>`,
		"truncated":    `<svg><circle`,
		"empty reader": ``,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNilLibraryLen(t *testing.T) {
	var lib *Library
	if lib.Len() != 0 {
		t.Error("nil library should be empty")
	}
	if Empty.Len() != 0 {
		t.Error("Empty should be empty")
	}
}
