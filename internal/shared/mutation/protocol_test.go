package mutation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// note is a minimal resource used to exercise the protocol.
type note struct {
	ID        uint
	Body      string
	CreatedAt time.Time
	Version   uint
}

func (n *note) Identifier() uint { return n.ID }

func (n *note) PrepareCreate(now time.Time) {
	n.ID = 0
	n.CreatedAt = now
	n.Version = 1
}

// memoryStore is an in-memory Store that records every call.
type memoryStore struct {
	rows   map[uint]note
	nextID uint
	calls  []string

	// replaceErr forces Replace to fail.
	replaceErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[uint]note{}, nextID: 1}
}

func (s *memoryStore) Insert(_ context.Context, n *note) error {
	s.calls = append(s.calls, "Insert")
	n.ID = s.nextID
	s.nextID++
	s.rows[n.ID] = *n
	return nil
}

func (s *memoryStore) Replace(_ context.Context, n *note) (bool, error) {
	s.calls = append(s.calls, "Replace")
	if s.replaceErr != nil {
		return false, s.replaceErr
	}
	cur, ok := s.rows[n.ID]
	if !ok {
		return false, nil
	}
	if n.Version != 0 && n.Version != cur.Version {
		return false, nil
	}
	n.Version = cur.Version + 1
	s.rows[n.ID] = *n
	return true, nil
}

func (s *memoryStore) Exists(_ context.Context, id uint) (bool, error) {
	s.calls = append(s.calls, "Exists")
	_, ok := s.rows[id]
	return ok, nil
}

func (s *memoryStore) FindByID(_ context.Context, id uint) (*note, error) {
	s.calls = append(s.calls, "FindByID")
	n, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (s *memoryStore) Remove(_ context.Context, n *note) error {
	s.calls = append(s.calls, "Remove")
	delete(s.rows, n.ID)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestProtocol_Create(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := newMemoryStore()
	p := New[*note](store, "note", WithClock[*note](fixedClock(now)))

	created, err := p.Create(context.Background(), &note{
		ID:        42,
		Body:      "hello",
		CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID, "client-supplied id must be ignored")
	assert.Equal(t, now, created.CreatedAt, "timestamp must be server-assigned")
	assert.Equal(t, uint(1), created.Version)
	assert.Contains(t, store.rows, uint(1))
}

func TestProtocol_Update(t *testing.T) {
	t.Run("identifier mismatch never touches the store", func(t *testing.T) {
		store := newMemoryStore()
		p := New[*note](store, "note")

		err := p.Update(context.Background(), 1, &note{ID: 2})

		assert.ErrorIs(t, err, ErrIdentifierMismatch)
		assert.Empty(t, store.calls)
	})

	t.Run("absent record is not found", func(t *testing.T) {
		store := newMemoryStore()
		p := New[*note](store, "note")

		err := p.Update(context.Background(), 7, &note{ID: 7, Body: "x"})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{"Replace", "Exists"}, store.calls)
	})

	t.Run("replaces present record", func(t *testing.T) {
		store := newMemoryStore()
		p := New[*note](store, "note")
		created, err := p.Create(context.Background(), &note{Body: "T1"})
		require.NoError(t, err)

		err = p.Update(context.Background(), created.ID, &note{ID: created.ID, Body: "T2"})

		require.NoError(t, err)
		assert.Equal(t, "T2", store.rows[created.ID].Body)
		assert.Equal(t, uint(2), store.rows[created.ID].Version)
	})

	t.Run("stale version on present record is a conflict", func(t *testing.T) {
		store := newMemoryStore()
		p := New[*note](store, "note")
		created, err := p.Create(context.Background(), &note{Body: "v1"})
		require.NoError(t, err)
		require.NoError(t, p.Update(context.Background(), created.ID, &note{ID: created.ID, Body: "v2", Version: 1}))

		err = p.Update(context.Background(), created.ID, &note{ID: created.ID, Body: "v3", Version: 1})

		assert.ErrorIs(t, err, ErrConcurrencyConflict)
		assert.Equal(t, "v2", store.rows[created.ID].Body)
	})

	t.Run("store failure is propagated", func(t *testing.T) {
		store := newMemoryStore()
		store.replaceErr = errors.New("connection reset")
		p := New[*note](store, "note")

		err := p.Update(context.Background(), 1, &note{ID: 1})

		assert.EqualError(t, err, "connection reset")
	})

	t.Run("resource specific errors", func(t *testing.T) {
		mismatch := ErrIdentifierMismatch.WithMessage("Note ID mismatch.")
		notFound := ErrNotFound.WithMessage("Note not found.")
		p := New[*note](newMemoryStore(), "note", WithErrors[*note](mismatch, notFound))

		err := p.Update(context.Background(), 1, &note{ID: 3})
		assert.EqualError(t, err, "Note ID mismatch.")
		assert.ErrorIs(t, err, ErrIdentifierMismatch)

		err = p.Update(context.Background(), 3, &note{ID: 3})
		assert.EqualError(t, err, "Note not found.")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestProtocol_Delete(t *testing.T) {
	t.Run("absent record is not found", func(t *testing.T) {
		store := newMemoryStore()
		p := New[*note](store, "note")

		err := p.Delete(context.Background(), 9)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotContains(t, store.calls, "Remove")
	})

	t.Run("create update delete then update is not found", func(t *testing.T) {
		store := newMemoryStore()
		p := New[*note](store, "note")
		ctx := context.Background()

		created, err := p.Create(ctx, &note{Body: "T1"})
		require.NoError(t, err)
		require.NoError(t, p.Update(ctx, created.ID, &note{ID: created.ID, Body: "T2"}))
		require.NoError(t, p.Delete(ctx, created.ID))

		err = p.Update(ctx, created.ID, &note{ID: created.ID, Body: "T3"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
