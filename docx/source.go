package docx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tbxark/docform/logger"
	"github.com/tbxark/docform/render"
)

var _ render.Loader = (*Source)(nil)

// Source loads a template file, keeping its bytes in memory until Invalidate is called.
// Every Load returns a freshly parsed Document.
type Source struct {
	path     string
	readFile func(string) ([]byte, error)

	mu   sync.RWMutex
	data []byte
	// gen counts invalidations; a read that raced one is not cached.
	gen uint64
}

func NewSource(path string) *Source {
	return &Source{path: path, readFile: os.ReadFile}
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Load(ctx context.Context) (render.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.bytes()
	if err != nil {
		return nil, err
	}
	doc, err := OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *Source) Invalidate() {
	s.mu.Lock()
	s.data = nil
	s.gen++
	s.mu.Unlock()
}

func (s *Source) cached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data != nil
}

func (s *Source) bytes() ([]byte, error) {
	s.mu.RLock()
	data, gen := s.data, s.gen
	s.mu.RUnlock()
	if data != nil {
		return data, nil
	}
	data, err := s.readFile(s.path)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.gen == gen {
		s.data = data
	}
	s.mu.Unlock()
	return data, nil
}

// Watch drops the cached bytes whenever the template file changes. It watches the
// parent directory so editors that replace the file by rename are seen. Watch blocks
// until ctx is done.
func (s *Source) Watch(ctx context.Context, log *logger.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	log.Info("watching template", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				s.Invalidate()
				log.Info("template changed", "path", target, "op", event.Op.String())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("template watcher error", "error", err)
		}
	}
}
