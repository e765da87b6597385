package session

import (
	"context"
	"sync"

	"github.com/tbxark/docform/form"
)

// Backend persists form sessions under a flat key. Load returns nil when the key is absent.
type Backend interface {
	Save(ctx context.Context, key string, s *form.Session) error
	Load(ctx context.Context, key string) (*form.Session, error)
	Delete(ctx context.Context, key string) error
}

// MemoryBackend keeps sessions in process memory. Sessions are lost on restart.
type MemoryBackend struct {
	mu       sync.RWMutex
	sessions map[string]form.Session
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: map[string]form.Session{}}
}

func (m *MemoryBackend) Save(ctx context.Context, key string, s *form.Session) error {
	m.mu.Lock()
	m.sessions[key] = clone(s)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Load(ctx context.Context, key string) (*form.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	c := clone(&s)
	return &c, nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.sessions, key)
	m.mu.Unlock()
	return nil
}

// clone copies the collected map so callers never share it with the backend.
func clone(s *form.Session) form.Session {
	c := *s
	c.Collected = make(map[string]string, len(s.Collected))
	for k, v := range s.Collected {
		c.Collected[k] = v
	}
	return c
}
