// Package fonts provides the font families used for word boxes.
//
// Each word picks one of three CSS families (sans, serif, mono). Browsers
// resolve the CSS stacks from [Family.CSS]; everything measured or rasterized
// in-process uses embedded Go fonts from golang.org/x/image/font/gofont,
// unless a [Set] overrides a family with user supplied TTF/OTF files.
//
// The Go fonts ship no serif face, so the serif family falls back to the
// proportional Go faces unless overridden.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family identifies one of the three word font families.
type Family string

const (
	Sans  Family = "sans"
	Serif Family = "serif"
	Mono  Family = "mono"
)

// Families lists the selectable families in draw order.
var Families = []Family{Sans, Serif, Mono}

// Weights lists the selectable CSS font weights in draw order.
var Weights = []int{300, 400, 500, 600, 700, 800}

// CSS returns the font-family stack emitted into HTML and SVG.
func (f Family) CSS() string {
	switch f {
	case Serif:
		return `"Times New Roman", Times, serif`
	case Mono:
		return `Courier, monospace`
	default:
		return `Helvetica, Arial, sans-serif`
	}
}

// Bold reports whether weight renders with the bold face.
func Bold(weight int) bool { return weight >= 600 }

// Paths holds optional font file overrides per family.
type Paths struct {
	Sans, SansBold   string
	Serif, SerifBold string
	Mono, MonoBold   string
}

// Set resolves (family, weight) pairs to font data and parsed faces.
// The zero value uses only embedded fonts. A Set is safe for concurrent use.
type Set struct {
	overrides map[faceKey][]byte

	mu     sync.Mutex
	parsed map[faceKey]*opentype.Font
}

type faceKey struct {
	family Family
	weight int
}

// Default is the embedded-only font set.
var Default = &Set{}

// LoadSet reads the override files named in p. Empty paths keep the
// embedded default for that slot.
func LoadSet(p Paths) (*Set, error) {
	s := &Set{overrides: make(map[faceKey][]byte)}
	slots := []struct {
		path   string
		family Family
		bold   bool
	}{
		{p.Sans, Sans, false}, {p.SansBold, Sans, true},
		{p.Serif, Serif, false}, {p.SerifBold, Serif, true},
		{p.Mono, Mono, false}, {p.MonoBold, Mono, true},
	}
	for _, slot := range slots {
		if slot.path == "" {
			continue
		}
		data, err := os.ReadFile(slot.path)
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", slot.family, err)
		}
		if _, err := opentype.Parse(data); err != nil {
			return nil, fmt.Errorf("font %s: %s: %w", slot.family, slot.path, err)
		}
		for _, w := range Weights {
			if Bold(w) == slot.bold {
				s.overrides[faceKey{slot.family, w}] = data
			}
		}
	}
	return s, nil
}

// Data returns the raw font file for family and weight.
func (s *Set) Data(f Family, weight int) []byte {
	if s != nil {
		if data, ok := s.overrides[faceKey{f, weight}]; ok {
			return data
		}
	}
	return embedded(f, weight)
}

// Font returns the parsed font for family and weight, parsing at most once.
func (s *Set) Font(f Family, weight int) (*opentype.Font, error) {
	if s == nil {
		s = Default
	}
	key := faceKey{f, weight}

	s.mu.Lock()
	defer s.mu.Unlock()
	if fnt, ok := s.parsed[key]; ok {
		return fnt, nil
	}
	fnt, err := opentype.Parse(s.Data(f, weight))
	if err != nil {
		return nil, err
	}
	if s.parsed == nil {
		s.parsed = make(map[faceKey]*opentype.Font)
	}
	s.parsed[key] = fnt
	return fnt, nil
}

func embedded(f Family, weight int) []byte {
	if f == Mono {
		if Bold(weight) {
			return gomonobold.TTF
		}
		return gomono.TTF
	}
	switch {
	case Bold(weight):
		return gobold.TTF
	case weight == 500:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}
