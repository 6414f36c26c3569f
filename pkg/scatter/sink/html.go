package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/typescatter/pkg/scatter"
)

// BlockClass is the class attribute of the block element.
const BlockClass = "answer-block"

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	id bool
}

// WithBlockID sets the block's id attribute to the composition ID.
func WithBlockID() HTMLOption { return func(r *htmlRenderer) { r.id = true } }

// RenderHTML renders c as a block element with absolutely positioned
// children in document order: background shape, words, foreground shape.
// A nil composition renders nothing.
func RenderHTML(c *scatter.Composition, opts ...HTMLOption) []byte {
	if c == nil {
		return nil
	}
	r := htmlRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="` + BlockClass + `"`)
	if r.id && c.ID != "" {
		fmt.Fprintf(&buf, ` id="%s"`, escapeXML(c.ID))
	}
	fmt.Fprintf(&buf, ` style="position:relative;width:100%%;min-height:%spx;margin-top:%spx">`,
		num(c.MinHeight), num(c.MarginTop))
	buf.WriteByte('\n')

	if c.Background != nil {
		writeHTMLShape(&buf, c.Background)
	}
	for _, w := range c.Words {
		writeHTMLWord(&buf, w)
	}
	if c.Foreground != nil {
		writeHTMLShape(&buf, c.Foreground)
	}

	buf.WriteString("</div>\n")
	return buf.Bytes()
}

func writeHTMLWord(buf *bytes.Buffer, w scatter.Word) {
	style := fmt.Sprintf(
		"position:absolute;left:%spx;top:%spx;font-family:%s;font-weight:%d;font-size:%spx;"+
			"line-height:1.1;white-space:nowrap;transform-origin:0 0;"+
			"transform:translate(%spx, %spx) scale(%s);z-index:%d;opacity:%s",
		num(w.Left), num(w.Top), w.Family.CSS(), w.Weight, num(w.FontSize),
		num(w.TranslateX), num(w.TranslateY), num(w.Scale), w.Z, num(w.Opacity))
	fmt.Fprintf(buf, `  <div class="word" style="%s">%s</div>`+"\n", escapeXML(style), escapeXML(w.Text))
}

func writeHTMLShape(buf *bytes.Buffer, s *scatter.ShapePlacement) {
	fmt.Fprintf(buf,
		`  <div class="shape %s" style="position:absolute;top:%spx;left:%s%%;width:%s%%;opacity:%s;z-index:%d;pointer-events:none">`,
		s.Layer, num(s.Top), num(s.LeftPct), num(s.WidthPct), num(s.Opacity), s.Z)
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s" width="100%%" preserveAspectRatio="xMidYMid meet">%s</svg></div>`+"\n",
		escapeXML(s.ViewBox), s.Template.Markup)
}
