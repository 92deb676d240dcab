package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
)

var ErrDuplicateID = errors.New("duplicate id")

// Table is an in-memory collection of T keyed by id. Rows keep their insertion order.
// Every call waits for the table latency first and gives up when ctx is done.
type Table[T any] struct {
	sync.RWMutex
	name    string
	id      func(T) string
	latency time.Duration

	rows  []T
	index map[string]int // {id: position in rows}
}

func NewTable[T any](name string, id func(T) string, latency time.Duration) *Table[T] {
	return &Table[T]{
		name:    name,
		id:      id,
		latency: latency,
		index:   make(map[string]int),
	}
}

func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) wait(ctx context.Context) error {
	if t.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(t.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (t *Table[T]) notFound(id string) error {
	return errors.Wrapf(core.ErrNotFound, "%s %q", t.name, id)
}

func (t *Table[T]) reindex() {
	t.index = make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		t.index[t.id(row)] = i
	}
}

func (t *Table[T]) QueryAll(ctx context.Context) ([]T, error) {
	if err := t.wait(ctx); err != nil {
		return nil, err
	}
	t.RLock()
	defer t.RUnlock()
	return append(make([]T, 0, len(t.rows)), t.rows...), nil
}

func (t *Table[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := t.wait(ctx); err != nil {
		return zero, err
	}
	t.RLock()
	defer t.RUnlock()
	if i, ok := t.index[id]; ok {
		return t.rows[i], nil
	}
	return zero, t.notFound(id)
}

// Find returns the first row matching match.
func (t *Table[T]) Find(ctx context.Context, match func(T) bool) (T, error) {
	var zero T
	if err := t.wait(ctx); err != nil {
		return zero, err
	}
	t.RLock()
	defer t.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return row, nil
		}
	}
	return zero, errors.Wrapf(core.ErrNotFound, "%s", t.name)
}

// Insert adds rows. Nothing is inserted when one of the ids already exists.
func (t *Table[T]) Insert(ctx context.Context, rows ...T) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.Lock()
	defer t.Unlock()
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		id := t.id(row)
		if _, ok := t.index[id]; ok {
			return errors.Wrapf(ErrDuplicateID, "%s %q", t.name, id)
		}
		if _, ok := seen[id]; ok {
			return errors.Wrapf(ErrDuplicateID, "%s %q", t.name, id)
		}
		seen[id] = struct{}{}
	}
	for _, row := range rows {
		t.index[t.id(row)] = len(t.rows)
		t.rows = append(t.rows, row)
	}
	return nil
}

// Update replaces the row with the given id by fn(row). The id cannot change.
func (t *Table[T]) Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var zero T
	if err := t.wait(ctx); err != nil {
		return zero, err
	}
	t.Lock()
	defer t.Unlock()
	i, ok := t.index[id]
	if !ok {
		return zero, t.notFound(id)
	}
	row, err := fn(t.rows[i])
	if err != nil {
		return zero, err
	}
	if t.id(row) != id {
		return zero, errors.Errorf("%s %q: id cannot change", t.name, id)
	}
	t.rows[i] = row
	return row, nil
}

// Delete removes the rows with the given ids; unknown ids are ignored.
func (t *Table[T]) Delete(ctx context.Context, ids ...string) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.Lock()
	defer t.Unlock()
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if _, ok := drop[t.id(row)]; !ok {
			kept = append(kept, row)
		}
	}
	t.rows = kept
	t.reindex()
	return nil
}

func (t *Table[T]) Len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.rows)
}
