// Package render substitutes {{key}} placeholders in a document content tree.
package render

import (
	"context"
	"io"
)

// Document is the root of a content tree.
type Document interface {
	Blocks() []Block
}

// Block is either a Paragraph or a Table. Other values are skipped.
type Block any

// Paragraph is a sequence of styled runs. Text concatenates the runs; SetText replaces
// every run with a single plain run holding text.
type Paragraph interface {
	Text() string
	SetText(text string)
}

type Table interface {
	Rows() []Row
}

type Row interface {
	Cells() []Cell
}

// Cell holds paragraphs and possibly nested tables.
type Cell interface {
	Blocks() []Block
}

// Template is a loaded document that can be serialized.
type Template interface {
	Document
	WriteTo(w io.Writer) (int64, error)
}

// Loader produces a fresh, independently mutable Template on every call.
type Loader interface {
	Load(ctx context.Context) (Template, error)
}
