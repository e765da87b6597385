package render

// Stats counts what Substitute visited.
type Stats struct {
	Paragraphs int
	Changed    int
}

// Substitute rewrites every paragraph of doc, including those inside table cells at
// any depth. A paragraph whose text changes is collapsed into a single run, so tokens
// split across runs are still found; untouched paragraphs keep their runs.
func Substitute(doc Document, placeholders PlaceholderMap) Stats {
	var stats Stats
	walkBlocks(doc.Blocks(), func(p Paragraph) {
		stats.Paragraphs++
		original := p.Text()
		if text := placeholders.Apply(original); text != original {
			p.SetText(text)
			stats.Changed++
		}
	})
	return stats
}

func walkBlocks(blocks []Block, fn func(Paragraph)) {
	for _, block := range blocks {
		switch b := block.(type) {
		case Paragraph:
			fn(b)
		case Table:
			for _, row := range b.Rows() {
				for _, cell := range row.Cells() {
					walkBlocks(cell.Blocks(), fn)
				}
			}
		}
	}
}
