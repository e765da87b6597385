package session

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tbxark/docform/artifact"
	"github.com/tbxark/docform/docx"
	"github.com/tbxark/docform/form"
	"github.com/tbxark/docform/logger"
	"github.com/tbxark/docform/render"
	"github.com/tbxark/docform/schema"
)

const invoiceBody = `<w:p><w:r><w:t>Рахунок №{{contract_</w:t></w:r><w:r><w:t>number}} від {{contract_date}}</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Замовник: {{customer}}</w:t></w:r></w:p>` +
	`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>{{amount}} грн</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>{{items_total_text}}</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

type testFlow struct {
	flow      *Flow
	backend   *MemoryBackend
	outputDir string
}

func newTestFlow(t *testing.T, templatePath string) *testFlow {
	t.Helper()
	sch := schema.Invoice()
	backend := NewMemoryBackend()
	out := t.TempDir()
	flow, err := NewFlow(Config{
		Machine:   form.NewMachine(sch, nil),
		States:    NewSessionStore(backend, sch),
		Engine:    render.NewEngine(docx.NewSource(templatePath)),
		Namer:     artifact.NewNamer(sch.PrimaryKey()),
		OutputDir: out,
		Logger:    logger.Nop(),
	})
	require.NoError(t, err)
	return &testFlow{flow: flow, backend: backend, outputDir: out}
}

// stored reports how many sessions the backend holds.
func (tf *testFlow) stored() int {
	tf.backend.mu.RLock()
	defer tf.backend.mu.RUnlock()
	return len(tf.backend.sessions)
}

func paragraphTexts(blocks []render.Block) []string {
	var out []string
	for _, b := range blocks {
		switch v := b.(type) {
		case render.Paragraph:
			out = append(out, v.Text())
		case render.Table:
			for _, row := range v.Rows() {
				for _, cell := range row.Cells() {
					out = append(out, paragraphTexts(cell.Blocks())...)
				}
			}
		}
	}
	return out
}
