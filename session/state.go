package session

import (
	"context"
	"fmt"

	"github.com/tbxark/docform/form"
	"github.com/tbxark/docform/schema"
)

// StateReadWriter keeps one form session per conversation, routed by the context key.
type StateReadWriter interface {
	// Read returns nil when the conversation has no session.
	Read(ctx context.Context) (*form.Session, error)
	Write(ctx context.Context, s *form.Session) error
	Remove(ctx context.Context) error
}

type stateKeyContext struct{}

const defaultStateKey = "default"

// WithStateKey sets a routing key for state storage in the context.
func WithStateKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, stateKeyContext{}, key)
}

// StateKeyFromContext gets the routing key from the context.
func StateKeyFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(stateKeyContext{})
	if value == nil {
		return "", false
	}
	key, ok := value.(string)
	return key, ok
}

// SessionStore keys sessions by the context routing key under a fixed namespace and
// validates them against the schema when reading them back, so a record written under a
// different field list is never resumed.
type SessionStore struct {
	backend Backend
	schema  *schema.Schema
}

const sessionNamespace = "formbot:session:"

func NewSessionStore(backend Backend, sch *schema.Schema) *SessionStore {
	return &SessionStore{backend: backend, schema: sch}
}

func NewMemorySessionStore(sch *schema.Schema) *SessionStore {
	return NewSessionStore(NewMemoryBackend(), sch)
}

// routingKey falls back to a shared key when the context carries none, so single-user
// transports such as the console need no routing.
func routingKey(ctx context.Context) string {
	key, ok := StateKeyFromContext(ctx)
	if !ok || key == "" {
		return defaultStateKey
	}
	return key
}

func sessionKey(ctx context.Context) string {
	return sessionNamespace + routingKey(ctx)
}

func (s *SessionStore) Read(ctx context.Context) (*form.Session, error) {
	key := sessionKey(ctx)
	sess, err := s.backend.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	if err := sess.Check(s.schema); err != nil {
		_ = s.backend.Delete(ctx, key)
		return nil, fmt.Errorf("discarded stored session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) Write(ctx context.Context, sess *form.Session) error {
	return s.backend.Save(ctx, sessionKey(ctx), sess)
}

func (s *SessionStore) Remove(ctx context.Context) error {
	return s.backend.Delete(ctx, sessionKey(ctx))
}
