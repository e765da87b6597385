package render

import (
	"context"
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/tbxark/docform/types"
)

type Engine struct {
	loader Loader
}

func NewEngine(loader Loader) *Engine {
	return &Engine{loader: loader}
}

// Render loads the template, substitutes placeholders and writes the result to outPath.
// The file appears at outPath only once it is complete. Errors wrap
// types.ErrTemplateLoad or types.ErrTemplateRender.
func (e *Engine) Render(ctx context.Context, placeholders PlaceholderMap, outPath string) (Stats, error) {
	tpl, err := e.loader.Load(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", types.ErrTemplateLoad, err)
	}
	stats := Substitute(tpl, placeholders)
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", types.ErrTemplateRender, err)
	}
	if err := writeAtomic(outPath, tpl); err != nil {
		return stats, fmt.Errorf("%w: %w", types.ErrTemplateRender, err)
	}
	return stats, nil
}

// outputPerm is applied through the process umask, like a plain file create.
const outputPerm os.FileMode = 0o644

func writeAtomic(path string, tpl Template) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(outputPerm))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer pending.Cleanup()
	if _, err := tpl.WriteTo(pending); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("move document into place: %w", err)
	}
	return nil
}
