// Package mutation implements the optimistic-concurrency create/update/delete
// protocol shared by the task and user resources.
package mutation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"task_backend/internal/platform/apperr"
)

var (
	// ErrIdentifierMismatch is returned when the body id differs from the path id.
	ErrIdentifierMismatch = apperr.Validation("ID_MISMATCH", "ID mismatch.")

	// ErrNotFound is returned when the record does not exist.
	ErrNotFound = apperr.NotFound("NOT_FOUND", "Resource not found.")

	// ErrConcurrencyConflict is returned when the record exists but was modified
	// concurrently. It is never retried.
	ErrConcurrencyConflict = apperr.New(apperr.KindConcurrencyConflict, "CONCURRENCY_CONFLICT", "Internal server error.")
)

// Resource is implemented by entities managed by the protocol.
type Resource interface {
	// Identifier returns the id carried by the entity.
	Identifier() uint
	// PrepareCreate clears any client-supplied id and stamps server-owned fields.
	PrepareCreate(now time.Time)
}

// Store is the persistence contract a resource family must satisfy.
type Store[T Resource] interface {
	Insert(ctx context.Context, v T) error
	// Replace overwrites the stored record with v. It reports false when no row
	// matched the id (and version, if v carries one).
	Replace(ctx context.Context, v T) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// FindByID returns an error matching ErrNotFound when the record is absent.
	FindByID(ctx context.Context, id uint) (T, error)
	Remove(ctx context.Context, v T) error
}

// Protocol applies the mutation rules to a single resource family.
type Protocol[T Resource] struct {
	store Store[T]
	kind  string
	now   func() time.Time

	mismatch *apperr.Error
	notFound *apperr.Error
}

// Option customises a Protocol.
type Option[T Resource] func(*Protocol[T])

// WithClock overrides the time source used by Create.
func WithClock[T Resource](now func() time.Time) Option[T] {
	return func(p *Protocol[T]) { p.now = now }
}

// WithErrors replaces the generic mismatch and not-found errors with
// resource-specific ones. Both must match the package sentinels' kinds.
func WithErrors[T Resource](mismatch, notFound *apperr.Error) Option[T] {
	return func(p *Protocol[T]) {
		p.mismatch = mismatch
		p.notFound = notFound
	}
}

// New creates a Protocol for the given store. kind names the resource in logs.
func New[T Resource](store Store[T], kind string, opts ...Option[T]) *Protocol[T] {
	p := &Protocol[T]{
		store:    store,
		kind:     kind,
		now:      func() time.Time { return time.Now().UTC() },
		mismatch: ErrIdentifierMismatch,
		notFound: ErrNotFound,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create stamps v, inserts it, and returns it with its assigned id.
func (p *Protocol[T]) Create(ctx context.Context, v T) (T, error) {
	v.PrepareCreate(p.now())
	if err := p.store.Insert(ctx, v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Update fully replaces the record with id using v.
func (p *Protocol[T]) Update(ctx context.Context, id uint, v T) error {
	if v.Identifier() != id {
		return p.mismatch
	}

	matched, err := p.store.Replace(ctx, v)
	if err != nil {
		return err
	}
	if matched {
		return nil
	}

	// Nothing matched: either the row is gone or someone else changed it.
	exists, err := p.store.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return p.notFound
	}

	slog.ErrorContext(ctx, "concurrency conflict", "resource", p.kind, "id", id)
	return fmt.Errorf("%s %d: %w", p.kind, id, ErrConcurrencyConflict)
}

// Delete removes the record with id.
func (p *Protocol[T]) Delete(ctx context.Context, id uint) error {
	v, err := p.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return p.store.Remove(ctx, v)
}
