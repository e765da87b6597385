// Package docx reads and writes Word documents as a zip of XML parts. Only the main
// document part is parsed; every other part is copied through byte for byte.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/tbxark/docform/render"
)

const (
	wordNamespace     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	officeDocumentRel = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	defaultMainPart   = "word/document.xml"
)

var ErrNotDocx = errors.New("not a word document")

var _ render.Template = (*Document)(nil)

type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
}

// Document is one opened package. It is not safe for concurrent use.
type Document struct {
	parts    []*part
	mainPart *part
	root     []Node
	body     *Element
	w        string
}

func OpenFile(name string) (*Document, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return OpenBytes(data)
}

func OpenBytes(data []byte) (*Document, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

func Open(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}
	doc := &Document{}
	byName := make(map[string]*part, len(zr.File))
	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		p := &part{name: f.Name, method: f.Method, modified: f.Modified, data: data}
		doc.parts = append(doc.parts, p)
		byName[f.Name] = p
	}

	mainName := defaultMainPart
	if rels, ok := byName["_rels/.rels"]; ok {
		if target, found := findMainTarget(rels.data); found {
			mainName = target
		}
	}
	main, ok := byName[mainName]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDocx, mainName)
	}
	doc.mainPart = main

	doc.root, err = parseXML(main.data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", mainName, err)
	}
	rootEl := firstElement(doc.root)
	if rootEl == nil {
		return nil, fmt.Errorf("%w: empty %s", ErrNotDocx, mainName)
	}
	doc.w = wordPrefix(rootEl)
	doc.body = rootEl.Child(doc.w, "body")
	if doc.body == nil {
		return nil, fmt.Errorf("%w: %s has no body", ErrNotDocx, mainName)
	}
	return doc, nil
}

// Blocks returns the top-level paragraphs and tables of the body.
func (d *Document) Blocks() []render.Block {
	return blocksOf(d.body, d.w)
}

// WriteTo writes the package as a new zip archive, serializing the main part from the
// in-memory tree.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	var main bytes.Buffer
	if err := writeXML(&main, d.root); err != nil {
		return 0, fmt.Errorf("serialize %s: %w", d.mainPart.name, err)
	}
	for _, p := range d.parts {
		data := p.data
		if p == d.mainPart {
			data = main.Bytes()
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: p.method, Modified: p.modified})
		if err != nil {
			return cw.n, err
		}
		if _, err := fw.Write(data); err != nil {
			return cw.n, err
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func findMainTarget(data []byte) (string, bool) {
	nodes, err := parseXML(data)
	if err != nil {
		return "", false
	}
	root := firstElement(nodes)
	if root == nil {
		return "", false
	}
	for _, child := range root.Children {
		el, ok := child.(*Element)
		if !ok || el.Name.Local != "Relationship" {
			continue
		}
		if typ, _ := el.AttrValue("", "Type"); typ != officeDocumentRel {
			continue
		}
		target, ok := el.AttrValue("", "Target")
		if !ok || target == "" {
			continue
		}
		return path.Clean(trimLeadingSlash(target)), true
	}
	return "", false
}

func trimLeadingSlash(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}

func firstElement(nodes []Node) *Element {
	for _, n := range nodes {
		if el, ok := n.(*Element); ok {
			return el
		}
	}
	return nil
}

func wordPrefix(root *Element) string {
	for _, a := range root.Attr {
		if a.Name.Space == "xmlns" && a.Value == wordNamespace {
			return a.Name.Local
		}
	}
	return "w"
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
