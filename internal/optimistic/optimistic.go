// Package optimistic applies user edits to view state before the backend
// confirms them and restores the prior value when persistence fails.
package optimistic

import (
	"context"
	"log/slog"
	"sync"
)

// Cell holds one piece of view state.
type Cell[T any] struct {
	mu    sync.RWMutex
	value T
	clone func(T) T
}

// NewCell returns a cell seeded with initial. clone must return a copy that
// shares no mutable memory with its argument; nil means T is a plain value.
func NewCell[T any](initial T, clone func(T) T) *Cell[T] {
	if clone == nil {
		clone = func(value T) T { return value }
	}
	return &Cell[T]{value: initial, clone: clone}
}

// Get returns a copy of the current value.
func (cell *Cell[T]) Get() T {
	cell.mu.RLock()
	defer cell.mu.RUnlock()
	return cell.clone(cell.value)
}

func (cell *Cell[T]) Set(value T) {
	cell.mu.Lock()
	defer cell.mu.Unlock()
	cell.value = cell.clone(value)
}

// Edit derives the next value from a private copy of the current one.
// Returning an error aborts the update before anything changes.
type Edit[T any] func(current T) (T, error)

// Persist sends the complete updated value to the backend.
type Persist[T any] func(ctx context.Context, updated T) error

// Apply snapshots the cell, publishes the edited value immediately and then
// persists it. When persist fails the cell is reset to the snapshot and the
// persistence error is returned with the snapshot. There is no retry.
func Apply[T any](ctx context.Context, cell *Cell[T], edit Edit[T], persist Persist[T]) (T, error) {
	cell.mu.Lock()
	previous := cell.value
	updated, err := edit(cell.clone(previous))
	if err != nil {
		cell.mu.Unlock()
		return cell.clone(previous), err
	}
	cell.value = cell.clone(updated)
	cell.mu.Unlock()

	if err := persist(ctx, cell.clone(updated)); err != nil {
		cell.mu.Lock()
		cell.value = previous
		cell.mu.Unlock()
		slog.ErrorContext(ctx, "optimistic update rolled back", "error", err)
		return cell.clone(previous), err
	}
	return updated, nil
}
