package docx

import (
	"encoding/xml"
	"strings"

	"github.com/tbxark/docform/render"
)

var (
	_ render.Paragraph = (*Paragraph)(nil)
	_ render.Table     = (*Table)(nil)
	_ render.Row       = (*Row)(nil)
	_ render.Cell      = (*Cell)(nil)
)

type Paragraph struct {
	el *Element
	w  string
}

type Table struct {
	el *Element
	w  string
}

type Row struct {
	el *Element
	w  string
}

type Cell struct {
	el *Element
	w  string
}

// blocksOf lists paragraphs and tables under a body or cell. Structured document tags
// are transparent.
func blocksOf(parent *Element, w string) []render.Block {
	var out []render.Block
	for _, child := range parent.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		switch {
		case el.Is(w, "p"):
			out = append(out, &Paragraph{el: el, w: w})
		case el.Is(w, "tbl"):
			out = append(out, &Table{el: el, w: w})
		case el.Is(w, "sdt"):
			if content := el.Child(w, "sdtContent"); content != nil {
				out = append(out, blocksOf(content, w)...)
			}
		}
	}
	return out
}

func (t *Table) Rows() []render.Row {
	var rows []render.Row
	for _, el := range childElements(t.el, t.w, "tr") {
		rows = append(rows, &Row{el: el, w: t.w})
	}
	return rows
}

func (r *Row) Cells() []render.Cell {
	var cells []render.Cell
	for _, el := range childElements(r.el, r.w, "tc") {
		cells = append(cells, &Cell{el: el, w: r.w})
	}
	return cells
}

func (c *Cell) Blocks() []render.Block {
	return blocksOf(c.el, c.w)
}

// childElements returns direct children named local, looking through sdt wrappers.
func childElements(parent *Element, w, local string) []*Element {
	var out []*Element
	for _, child := range parent.Children {
		el, ok := child.(*Element)
		if !ok {
			continue
		}
		if el.Is(w, local) {
			out = append(out, el)
			continue
		}
		if el.Is(w, "sdt") {
			if content := el.Child(w, "sdtContent"); content != nil {
				out = append(out, childElements(content, w, local)...)
			}
		}
	}
	return out
}

// Text concatenates the text of the paragraph's direct runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, child := range p.el.Children {
		el, ok := child.(*Element)
		if !ok || !el.Is(p.w, "r") {
			continue
		}
		p.runText(&sb, el)
	}
	return sb.String()
}

func (p *Paragraph) runText(sb *strings.Builder, run *Element) {
	for _, child := range run.Children {
		el, ok := child.(*Element)
		if !ok || el.Name.Space != p.w {
			continue
		}
		switch el.Name.Local {
		case "t":
			for _, c := range el.Children {
				if cd, ok := c.(CharData); ok {
					sb.WriteString(string(cd))
				}
			}
		case "tab", "ptab":
			sb.WriteByte('\t')
		case "br":
			if typ, ok := el.AttrValue(p.w, "type"); !ok || typ == "textWrapping" {
				sb.WriteByte('\n')
			}
		case "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
}

// SetText drops every direct run and puts a single unformatted run holding text where
// the first run was. Paragraph properties and non-run children are kept.
func (p *Paragraph) SetText(text string) {
	insertAt := -1
	kept := make([]Node, 0, len(p.el.Children))
	for _, child := range p.el.Children {
		if el, ok := child.(*Element); ok && el.Is(p.w, "r") {
			if insertAt < 0 {
				insertAt = len(kept)
			}
			continue
		}
		kept = append(kept, child)
	}
	if insertAt < 0 {
		insertAt = len(kept)
		if len(kept) > 0 {
			if el, ok := kept[0].(*Element); ok && el.Is(p.w, "pPr") {
				insertAt = 1
			} else {
				insertAt = 0
			}
		}
	}
	run := p.newRun(text)
	out := make([]Node, 0, len(kept)+1)
	out = append(out, kept[:insertAt]...)
	out = append(out, run)
	out = append(out, kept[insertAt:]...)
	p.el.Children = out
}

func (p *Paragraph) newRun(text string) *Element {
	run := &Element{Name: xml.Name{Space: p.w, Local: "r"}}
	var segment strings.Builder
	flush := func() {
		if segment.Len() == 0 {
			return
		}
		run.Children = append(run.Children, &Element{
			Name:     xml.Name{Space: p.w, Local: "t"},
			Attr:     []xml.Attr{{Name: xml.Name{Space: "xml", Local: "space"}, Value: "preserve"}},
			Children: []Node{CharData(segment.String())},
		})
		segment.Reset()
	}
	for _, r := range text {
		switch r {
		case '\t':
			flush()
			run.Children = append(run.Children, &Element{Name: xml.Name{Space: p.w, Local: "tab"}})
		case '\n':
			flush()
			run.Children = append(run.Children, &Element{Name: xml.Name{Space: p.w, Local: "br"}})
		default:
			segment.WriteRune(r)
		}
	}
	flush()
	return run
}
