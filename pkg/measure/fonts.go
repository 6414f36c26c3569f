package measure

import (
	"errors"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/typescatter/pkg/fonts"
)

// Fonts measures with glyph metrics from a font set.
type Fonts struct {
	Set *fonts.Set
}

// NewFonts returns a measurer for set. A nil set uses the embedded fonts.
func NewFonts(set *fonts.Set) *Fonts {
	if set == nil {
		set = fonts.Default
	}
	return &Fonts{Set: set}
}

// Probe returns a probe that caches font faces until it is closed.
func (m *Fonts) Probe() Probe {
	return &fontProbe{set: m.Set, faces: make(map[Style]font.Face)}
}

type fontProbe struct {
	set    *fonts.Set
	faces  map[Style]font.Face
	closed bool
}

func (p *fontProbe) Measure(text string, st Style) (float64, float64) {
	face, err := p.face(st)
	if err != nil {
		return estimateProbe{}.Measure(text, st)
	}
	w := font.MeasureString(face, text)
	h := face.Metrics().Height
	width, height := float64(w)/64, float64(h)/64
	if height <= 0 {
		height = st.Size * fallbackLineHeight
	}
	return width, height
}

func (p *fontProbe) face(st Style) (font.Face, error) {
	if p.closed {
		return nil, errors.New("measure: probe closed")
	}
	if f, ok := p.faces[st]; ok {
		return f, nil
	}
	fnt, err := p.set.Font(st.Family, st.Weight)
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    st.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	p.faces[st] = f
	return f, nil
}

// Close releases every face opened by the probe.
func (p *fontProbe) Close() error {
	var errs []error
	for st, f := range p.faces {
		errs = append(errs, f.Close())
		delete(p.faces, st)
	}
	p.closed = true
	return errors.Join(errs...)
}
