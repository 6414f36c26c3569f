package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/typescatter/pkg/scatter"
)

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ascent approximates the distance from a word box's top edge to its
// baseline: half the leading plus 80% of the em.
func ascent(w scatter.Word) float64 {
	return (w.Height-w.FontSize)/2 + w.FontSize*0.8
}

// viewBoxAspect returns height/width of a "minX minY width height" viewBox.
func viewBoxAspect(vb string) float64 {
	f := strings.Fields(strings.ReplaceAll(vb, ",", " "))
	if len(f) != 4 {
		return 1
	}
	w, err1 := strconv.ParseFloat(f[2], 64)
	h, err2 := strconv.ParseFloat(f[3], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 1
	}
	return h / w
}

// item is one paintable child of the block.
type item struct {
	z     int
	word  *scatter.Word
	shape *scatter.ShapePlacement
}

// paintOrder returns the block's children sorted the way a browser stacks
// them: by z-index, ties in document order.
func paintOrder(c *scatter.Composition) []item {
	var items []item
	if c.Background != nil {
		items = append(items, item{z: c.Background.Z, shape: c.Background})
	}
	for i := range c.Words {
		items = append(items, item{z: c.Words[i].Z, word: &c.Words[i]})
	}
	if c.Foreground != nil {
		items = append(items, item{z: c.Foreground.Z, shape: c.Foreground})
	}
	slices.SortStableFunc(items, func(a, b item) int { return cmp.Compare(a.z, b.z) })
	return items
}
