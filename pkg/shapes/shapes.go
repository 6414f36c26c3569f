// Package shapes loads decorative shape templates.
//
// The decorative asset is an SVG document whose root element's direct
// element children are reusable fragments. [Parse] turns the document into
// an immutable [Library]; a [Registry] holds the process-wide library, which
// stays empty until the one-time load finishes (or forever, if it fails).
package shapes

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	xlinkNS = "http://www.w3.org/1999/xlink"
	xmlNS   = "http://www.w3.org/XML/1998/namespace"
)

// DefaultViewBox is used when the asset's root carries no viewBox.
const DefaultViewBox = "0 0 100 100"

// Template is one top-level fragment of the decorative asset.
type Template struct {
	Name   string // element name, e.g. "path"
	Markup string // serialized element, attributes and children included
}

// Library is an immutable, ordered set of templates.
type Library struct {
	ViewBox   string
	Templates []Template
}

// Empty is the library used before (or instead of) a successful load.
var Empty = &Library{ViewBox: DefaultViewBox}

// Len returns the number of templates. A nil library is empty.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Templates)
}

// At returns template i.
func (l *Library) At(i int) Template { return l.Templates[i] }

type svgRoot struct {
	XMLName  xml.Name
	ViewBox  string    `xml:"viewBox,attr"`
	Children []svgNode `xml:",any"`
}

type svgNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
}

// Parse reads an SVG document and returns its top-level element children.
func Parse(r io.Reader) (*Library, error) {
	dec := xml.NewDecoder(r)
	dec.Entity = xml.HTMLEntity

	var root svgRoot
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("shapes: parse svg: %w", err)
	}
	if root.XMLName.Local != "svg" {
		return nil, fmt.Errorf("shapes: root element is <%s>, want <svg>", root.XMLName.Local)
	}

	lib := &Library{ViewBox: strings.TrimSpace(root.ViewBox)}
	if lib.ViewBox == "" {
		lib.ViewBox = DefaultViewBox
	}
	for _, n := range root.Children {
		lib.Templates = append(lib.Templates, Template{
			Name:   n.XMLName.Local,
			Markup: n.markup(),
		})
	}
	return lib, nil
}

func (n svgNode) markup() string {
	var buf bytes.Buffer
	buf.WriteByte('<')
	buf.WriteString(n.XMLName.Local)
	for _, a := range n.Attrs {
		name, ok := attrName(a.Name)
		if !ok {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(name)
		buf.WriteString(`="`)
		xml.EscapeText(&buf, []byte(a.Value))
		buf.WriteByte('"')
	}
	inner := bytes.TrimSpace(n.Inner)
	if len(inner) == 0 {
		buf.WriteString("/>")
		return buf.String()
	}
	buf.WriteByte('>')
	buf.Write(inner)
	buf.WriteString("</")
	buf.WriteString(n.XMLName.Local)
	buf.WriteByte('>')
	return buf.String()
}

// attrName restores the prefix of namespaced attributes. Attributes in
// unknown namespaces are dropped since their declaration stays on the root.
func attrName(n xml.Name) (string, bool) {
	switch n.Space {
	case "":
		return n.Local, true
	case "xmlns":
		return "xmlns:" + n.Local, true
	case xlinkNS, "xlink":
		return "xlink:" + n.Local, true
	case xmlNS, "xml":
		return "xml:" + n.Local, true
	default:
		return "", false
	}
}
