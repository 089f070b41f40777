package sceneio

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// node keeps child elements in document order, so mixed ponto/reta/poligono
// sequences survive a save and load unchanged.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) child(name string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

func (n *node) float(name string) (float64, error) {
	s, ok := n.attr(name)
	if !ok {
		return 0, fmt.Errorf("<%s>: missing attribute %q", n.XMLName.Local, name)
	}
	v, err := parseCoord(s)
	if err != nil {
		return 0, fmt.Errorf("<%s %s=%q>: %w", n.XMLName.Local, name, s, err)
	}
	return v, nil
}

func (n *node) vec() (geom.Vec2, error) {
	x, err := n.float("x")
	if err != nil {
		return geom.Vec2{}, err
	}
	y, err := n.float("y")
	if err != nil {
		return geom.Vec2{}, err
	}
	return geom.V(x, y), nil
}

// rect reads <block><lo x y/><hi x y/></block>; ok is false when any of the
// three elements is absent.
func (n *node) rect(block, lo, hi string) (r geom.Rect, ok bool, err error) {
	blk := n.child(block)
	if blk == nil {
		return geom.Rect{}, false, nil
	}
	ln, hn := blk.child(lo), blk.child(hi)
	if ln == nil || hn == nil {
		return geom.Rect{}, false, nil
	}
	a, err := ln.vec()
	if err != nil {
		return geom.Rect{}, false, err
	}
	b, err := hn.vec()
	if err != nil {
		return geom.Rect{}, false, err
	}
	return geom.R(a.X, a.Y, b.X, b.Y), true, nil
}

func (n *node) vertices() ([]geom.Vec2, error) {
	var pts []geom.Vec2
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local != "ponto" {
			continue
		}
		p, err := n.Nodes[i].vec()
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// Load reads a native scene document. Missing viewport or window blocks
// fall back to the defaults and missing cor attributes to the kind's
// default colour. A reta without exactly two points, or a poligono without
// any, is skipped. Any other problem fails the whole load.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, loadErr(path, err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return Document{}, loadErr(path, err)
	}
	return doc, nil
}

// Decode reads a native scene document from r.
func Decode(r io.Reader) (Document, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return Document{}, err
	}
	if root.XMLName.Local != "dados" {
		return Document{}, fmt.Errorf("root element is <%s>, want <dados>", root.XMLName.Local)
	}
	doc := NewDocument()

	vp, ok, err := root.rect("viewport", "vpmin", "vpmax")
	if err != nil {
		return Document{}, err
	}
	if ok {
		if vp.Degenerate() {
			return Document{}, fmt.Errorf("viewport %v has zero width or height", vp)
		}
		doc.Viewport = vp
	}
	win, ok, err := root.rect("window", "wmin", "wmax")
	if err != nil {
		return Document{}, err
	}
	if ok {
		if win.Degenerate() {
			return Document{}, fmt.Errorf("window %v has zero width or height", win)
		}
		doc.Window = win
	}

	for i := range root.Nodes {
		n := &root.Nodes[i]
		color, _ := n.attr("cor")
		switch n.XMLName.Local {
		case "ponto":
			p, err := n.vec()
			if err != nil {
				return Document{}, err
			}
			doc.Primitives = append(doc.Primitives, scene.NewPoint(p, color))
		case "reta":
			pts, err := n.vertices()
			if err != nil {
				return Document{}, err
			}
			if len(pts) != 2 {
				continue
			}
			doc.Primitives = append(doc.Primitives, scene.NewSegment(pts[0], pts[1], color))
		case "poligono":
			pts, err := n.vertices()
			if err != nil {
				return Document{}, err
			}
			if len(pts) == 0 {
				continue
			}
			doc.Primitives = append(doc.Primitives, scene.NewPolygon(pts, color))
		}
	}
	return doc, nil
}

// Save writes doc to path, then rewrites the file indented.
func Save(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := Encode(f, doc, ""); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := reindent(path); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func xy(p geom.Vec2) []xml.Attr {
	return []xml.Attr{
		{Name: xml.Name{Local: "x"}, Value: formatFloat(p.X)},
		{Name: xml.Name{Local: "y"}, Value: formatFloat(p.Y)},
	}
}

func cor(c string) xml.Attr { return xml.Attr{Name: xml.Name{Local: "cor"}, Value: c} }

// Encode writes doc as XML. A non-empty indent pretty-prints it.
func Encode(w io.Writer, doc Document, indent string) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if indent != "" {
		enc.Indent("", indent)
	}
	var err error
	start := func(name string, attrs ...xml.Attr) {
		if err == nil {
			err = enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
		}
	}
	end := func(name string) {
		if err == nil {
			err = enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
		}
	}
	leaf := func(name string, attrs ...xml.Attr) {
		start(name, attrs...)
		end(name)
	}

	start("dados")
	start("viewport")
	leaf("vpmin", xy(doc.Viewport.Min())...)
	leaf("vpmax", xy(doc.Viewport.Max())...)
	end("viewport")
	start("window")
	leaf("wmin", xy(doc.Window.Min())...)
	leaf("wmax", xy(doc.Window.Max())...)
	end("window")
	for _, p := range doc.Primitives {
		switch p.Kind() {
		case scene.KindPoint:
			leaf("ponto", append(xy(p.Coords()[0]), cor(p.ColorName()))...)
		case scene.KindSegment:
			start("reta", cor(p.ColorName()))
			for _, v := range p.Coords() {
				leaf("ponto", xy(v)...)
			}
			end("reta")
		case scene.KindPolygon:
			start("poligono", cor(p.ColorName()))
			for _, v := range p.Coords() {
				leaf("ponto", xy(v)...)
			}
			end("poligono")
		}
	}
	end("dados")
	if err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if indent != "" {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// reindent rewrites the XML file at path with two-space indentation.
func reindent(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	dec := xml.NewDecoder(bytes.NewReader(raw))
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.ProcInst:
			// the header is written above
			continue
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		}
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return err
		}
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
