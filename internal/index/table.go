package index

import (
	"fmt"
	"slices"

	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// Table is an in-memory ordered container of values keyed by fixed-width
// identifiers. A one-level Table is the scalar-key case.
type Table[V any] struct {
	levels int
	keys   []ir.Identifier
	values []V
}

// NewTable creates an empty table whose keys have the given width.
func NewTable[V any](levels int) *Table[V] {
	return &Table[V]{levels: levels}
}

// Append adds a row. Keys shorter than the table width are padded with
// ir.Blank; longer keys are rejected.
func (t *Table[V]) Append(key ir.Identifier, v V) error {
	if len(key) > t.levels {
		return selector.NewArityError(fmt.Sprintf(
			"key %s has %d levels, table has %d", key, len(key), t.levels))
	}
	t.keys = append(t.keys, key.Pad(t.levels))
	t.values = append(t.values, v)
	return nil
}

// Levels returns the key width.
func (t *Table[V]) Levels() int { return t.levels }

// Len returns the number of rows.
func (t *Table[V]) Len() int { return len(t.keys) }

// Key returns the key of row i.
func (t *Table[V]) Key(i int) ir.Identifier { return t.keys[i] }

// Value returns the value of row i.
func (t *Table[V]) Value(i int) V { return t.values[i] }

// Values returns a copy of the values in row order.
func (t *Table[V]) Values() []V { return slices.Clone(t.values) }

// Subset returns a new table holding the given rows in the given order.
func (t *Table[V]) Subset(rows []int) *Table[V] {
	out := &Table[V]{
		levels: t.levels,
		keys:   make([]ir.Identifier, len(rows)),
		values: make([]V, len(rows)),
	}
	for i, r := range rows {
		out.keys[i] = t.keys[r]
		out.values[i] = t.values[r]
	}
	return out
}
