package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbxark/docform/form"
	"github.com/tbxark/docform/schema"
	"github.com/tbxark/docform/types"
)

func TestStateKeyFromContext(t *testing.T) {
	_, ok := StateKeyFromContext(context.Background())
	assert.False(t, ok)

	key, ok := StateKeyFromContext(WithStateKey(context.Background(), "42"))
	assert.True(t, ok)
	assert.Equal(t, "42", key)

	assert.Equal(t, defaultStateKey, routingKey(WithStateKey(context.Background(), "")))
	assert.Equal(t, defaultStateKey, routingKey(context.Background()))
}

func TestSessionStoreNamespacesKeys(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSessionStore(backend, schema.Invoice())
	ctx := WithStateKey(context.Background(), "chat")

	s := &form.Session{Cursor: 0, Collected: map[string]string{}, Lifecycle: types.LifecycleCollecting}
	require.NoError(t, store.Write(ctx, s))

	got, err := backend.Load(ctx, "formbot:session:chat")
	require.NoError(t, err)
	assert.Equal(t, s, got)

	got, err = backend.Load(ctx, "chat")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	sch := schema.Invoice()
	store := NewMemorySessionStore(sch)
	ctx := WithStateKey(context.Background(), "chat")

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := &form.Session{Cursor: 1, Collected: map[string]string{"contract_number": "1"}, Lifecycle: types.LifecycleCollecting}
	require.NoError(t, store.Write(ctx, s))
	got, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	require.NoError(t, store.Remove(ctx))
	got, err = store.Read(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreDiscardsInvalidRecord(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewSessionStore(backend, schema.Invoice())
	ctx := WithStateKey(context.Background(), "chat")

	require.NoError(t, backend.Save(ctx, "formbot:session:chat", &form.Session{
		Cursor:    3,
		Collected: map[string]string{},
		Lifecycle: types.LifecycleCollecting,
	}))
	_, err := store.Read(ctx)
	require.Error(t, err)

	got, err := backend.Load(ctx, "formbot:session:chat")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryBackendCopiesSessions(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	s := &form.Session{Collected: map[string]string{"a": "1"}, Lifecycle: types.LifecycleCollecting}
	require.NoError(t, backend.Save(ctx, "k", s))

	s.Collected["a"] = "changed"
	got, err := backend.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "1", got.Collected["a"])

	got.Collected["b"] = "2"
	again, err := backend.Load(ctx, "k")
	require.NoError(t, err)
	assert.NotContains(t, again.Collected, "b")
}
