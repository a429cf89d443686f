package store

import (
	"time"

	"github.com/relooped/reloop-backend/pkg/db/models"
)

// Entity is any row type embedding models.Meta.
type Entity interface {
	EntityMeta() *models.Meta
}

// Table is a primary-key map with an insertion-order index. Writes stamp the
// audit columns and report a changed count instead of failing: callers decide
// whether a zero count is a NotFound, a Conflict or a no-op.
//
// Tables carry no locking of their own; access them inside Store.Read or
// Store.Write.
type Table[T Entity] struct {
	name  string
	seq   *sequence
	clock func() time.Time
	byID  map[int64]T
	order []int64
}

func newTable[T Entity](name string, seq *sequence, clock func() time.Time) *Table[T] {
	return &Table[T]{
		name:  name,
		seq:   seq,
		clock: clock,
		byID:  make(map[int64]T),
	}
}

// Name returns the table name used in logs.
func (t *Table[T]) Name() string {
	return t.name
}

// Len returns the number of stored rows.
func (t *Table[T]) Len() int {
	return len(t.byID)
}

// Insert assigns the next id, stamps created_at/updated_at and stores the row.
func (t *Table[T]) Insert(row T) int64 {
	id := t.seq.next()
	now := t.clock()
	meta := row.EntityMeta()
	meta.ID = id
	meta.CreatedAt = now
	meta.UpdatedAt = now
	t.byID[id] = row
	t.order = append(t.order, id)
	return id
}

// Get returns the row with the given id.
func (t *Table[T]) Get(id int64) (T, bool) {
	row, ok := t.byID[id]
	return row, ok
}

// First returns the first row (in insertion order) satisfying the predicate.
func (t *Table[T]) First(pred func(T) bool) (T, bool) {
	for _, id := range t.order {
		row := t.byID[id]
		if pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// List returns every row satisfying the predicate, in insertion order.
// A nil predicate matches everything.
func (t *Table[T]) List(pred func(T) bool) []T {
	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.byID[id]
		if pred == nil || pred(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Update applies the mutation to the row with the given id and re-stamps
// updated_at. Returns the changed count: 1 when the id existed, 0 otherwise.
func (t *Table[T]) Update(id int64, mutate func(T)) int64 {
	row, ok := t.byID[id]
	if !ok {
		return 0
	}
	mutate(row)
	row.EntityMeta().UpdatedAt = t.clock()
	return 1
}

// Delete removes the row with the given id. Returns the changed count.
func (t *Table[T]) Delete(id int64) int64 {
	if _, ok := t.byID[id]; !ok {
		return 0
	}
	delete(t.byID, id)
	for i, ordered := range t.order {
		if ordered == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return 1
}

// DeleteWhere removes every row satisfying the predicate and returns how many
// were removed. Used for cascade rules (cart cleanup on product deletion,
// cart clearing on checkout).
func (t *Table[T]) DeleteWhere(pred func(T) bool) int64 {
	var removed int64
	kept := t.order[:0]
	for _, id := range t.order {
		row := t.byID[id]
		if pred(row) {
			delete(t.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return removed
}
