package repo

import (
	"slices"
	"sync"

	"github.com/rogerio-castellano/yard-tracker/internal/models"
)

// memoryTable is the storage shared by the in-memory repositories.
// Ids grow monotonically and are never reused after a delete.
type memoryTable[T models.Entity] struct {
	mu     sync.RWMutex
	rows   []T
	nextID int
	assign func(row *T, id int)
}

func newMemoryTable[T models.Entity](assign func(row *T, id int)) *memoryTable[T] {
	return &memoryTable[T]{rows: []T{}, nextID: 1, assign: assign}
}

// insert stores row under a fresh id. conflict, when non-nil, rejects the
// insert if it reports true for any stored row.
func (t *memoryTable[T]) insert(row T, conflict func(existing T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if conflict != nil && slices.ContainsFunc(t.rows, conflict) {
		var zero T
		return zero, ErrDuplicatedValueUnique
	}
	t.assign(&row, t.nextID)
	t.nextID++
	t.rows = append(t.rows, row)
	return row, nil
}

func (t *memoryTable[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.rows)
}

func (t *memoryTable[T]) get(id int) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if r.GetID() == id {
			return r, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (t *memoryTable[T]) find(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, r := range t.rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// replace overwrites the row with the same id. conflict is checked against
// every other row.
func (t *memoryTable[T]) replace(row T, conflict func(existing T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := -1
	for i, r := range t.rows {
		if r.GetID() == row.GetID() {
			idx = i
			continue
		}
		if conflict != nil && conflict(r) {
			var zero T
			return zero, ErrDuplicatedValueUnique
		}
	}
	if idx < 0 {
		var zero T
		return zero, ErrNotFound
	}
	t.rows[idx] = row
	return row, nil
}

func (t *memoryTable[T]) remove(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, r := range t.rows {
		if r.GetID() == id {
			t.rows = slices.Delete(t.rows, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

func (t *memoryTable[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

func (t *memoryTable[T]) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = []T{}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// window applies offset/limit to an already filtered slice.
func window[T any](rows []T, offset, limit *int) []T {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, len(rows))
	}
	end := len(rows)
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, len(rows))
	}
	return rows[start:end]
}
