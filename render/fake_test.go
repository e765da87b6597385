package render

import (
	"context"
	"errors"
	"io"
	"strings"
)

type fakeParagraph struct {
	runs []string
}

func para(runs ...string) *fakeParagraph {
	return &fakeParagraph{runs: runs}
}

func (p *fakeParagraph) Text() string {
	return strings.Join(p.runs, "")
}

func (p *fakeParagraph) SetText(text string) {
	p.runs = []string{text}
}

type fakeTable struct {
	rows [][]*fakeCell
}

func (t *fakeTable) Rows() []Row {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = fakeRow(r)
	}
	return rows
}

type fakeRow []*fakeCell

func (r fakeRow) Cells() []Cell {
	cells := make([]Cell, len(r))
	for i, c := range r {
		cells[i] = c
	}
	return cells
}

type fakeCell struct {
	blocks []Block
}

func (c *fakeCell) Blocks() []Block {
	return c.blocks
}

type fakeDoc struct {
	blocks   []Block
	writeErr error
}

func (d *fakeDoc) Blocks() []Block {
	return d.blocks
}

func (d *fakeDoc) WriteTo(w io.Writer) (int64, error) {
	if d.writeErr != nil {
		n, _ := io.WriteString(w, "partial")
		return int64(n), d.writeErr
	}
	var sb strings.Builder
	walkBlocks(d.blocks, func(p Paragraph) {
		sb.WriteString(p.Text())
		sb.WriteString("\n")
	})
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

type fakeLoader struct {
	doc *fakeDoc
	err error
}

func (l *fakeLoader) Load(ctx context.Context) (Template, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.doc, nil
}

var errBoom = errors.New("boom")
