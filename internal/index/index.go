package index

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// Index is an ordered composite-key index. Every key has exactly Levels()
// atoms; each row carries an integer value.
//
// Keys may repeat. Lookup and Get resolve to the first row with the key.
// An Index is owned by its creator; use Clone for an independent copy.
type Index struct {
	names  []string
	keys   []ir.Identifier
	values []int
	first  map[string]int
}

// New builds an index from parallel key and value slices. Every key must
// have len(names) atoms. The slices are copied.
func New(names []string, keys []ir.Identifier, values []int) (*Index, error) {
	if len(keys) != len(values) {
		return nil, selector.NewLengthError("values", len(values), len(keys))
	}
	for i, k := range keys {
		if len(k) != len(names) {
			return nil, selector.NewArityError(fmt.Sprintf(
				"key %d (%s) has %d levels, index has %d", i, k, len(k), len(names)))
		}
	}

	idx := &Index{
		names:  slices.Clone(names),
		keys:   make([]ir.Identifier, len(keys)),
		values: append(make([]int, 0, len(values)), values...),
		first:  make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		idx.keys[i] = slices.Clone(k)
		if _, dup := idx.first[k.Key()]; !dup {
			idx.first[k.Key()] = i
		}
	}
	return idx, nil
}

// DefaultNames returns the level names "0", "1", ... n-1.
func DefaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

// MakeIndex builds an index from the expansion of sel. Keys are padded with
// ir.Blank to the selector's maximum level count, so branches of different
// depths share one fixed-width index. Row i has value i.
//
// names labels the levels; nil means DefaultNames. The empty selector yields
// an index with no rows.
func MakeIndex(sel selector.Like, names []string) (*Index, error) {
	width, err := selector.MaxLevels(sel)
	if err != nil {
		return nil, err
	}
	keys, err := expandKeys(sel, width)
	if err != nil {
		return nil, err
	}
	return build(keys, width, names)
}

// MakeIndexProduct builds the Cartesian product of the expansions of a and
// b. Both sides are padded to the larger of their level counts before each
// pair of keys is concatenated, so the index has twice that many levels.
func MakeIndexProduct(a, b selector.Like, names []string) (*Index, error) {
	width, left, right, err := expandPair(a, b)
	if err != nil {
		return nil, err
	}

	keys := make([]ir.Identifier, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			keys = append(keys, l.Concat(r))
		}
	}
	return build(keys, 2*width, names)
}

// MakeIndexConcat is MakeIndexProduct with the two expansions zipped
// pairwise instead of multiplied. Both selectors must denote the same number
// of identifiers.
func MakeIndexConcat(a, b selector.Like, names []string) (*Index, error) {
	width, left, right, err := expandPair(a, b)
	if err != nil {
		return nil, err
	}
	if len(left) != len(right) {
		return nil, selector.NewArityError(fmt.Sprintf(
			"cannot zip %d identifiers with %d", len(left), len(right)))
	}

	keys := make([]ir.Identifier, len(left))
	for i := range left {
		keys[i] = left[i].Concat(right[i])
	}
	return build(keys, 2*width, names)
}

func expandPair(a, b selector.Like) (int, []ir.Identifier, []ir.Identifier, error) {
	na, err := selector.MaxLevels(a)
	if err != nil {
		return 0, nil, nil, err
	}
	nb, err := selector.MaxLevels(b)
	if err != nil {
		return 0, nil, nil, err
	}
	width := max(na, nb)

	left, err := expandKeys(a, width)
	if err != nil {
		return 0, nil, nil, err
	}
	right, err := expandKeys(b, width)
	if err != nil {
		return 0, nil, nil, err
	}
	return width, left, right, nil
}

// expandKeys expands sel padded to width, without the empty sentinel.
func expandKeys(sel selector.Like, width int) ([]ir.Identifier, error) {
	ids, err := selector.Expand(sel, width)
	if err != nil {
		return nil, err
	}
	if len(ids) == 1 && len(ids[0]) == 0 {
		return nil, nil
	}
	return ids, nil
}

func build(keys []ir.Identifier, width int, names []string) (*Index, error) {
	if names == nil {
		names = DefaultNames(width)
	}
	if len(names) != width {
		return nil, selector.NewLengthError("level names", len(names), width)
	}
	values := make([]int, len(keys))
	for i := range values {
		values[i] = i
	}

	slog.Debug("index built",
		"levels", width,
		"rows", len(keys),
	)
	return New(names, keys, values)
}

// Names returns the level names.
func (x *Index) Names() []string { return slices.Clone(x.names) }

// Levels returns the key width.
func (x *Index) Levels() int { return len(x.names) }

// Len returns the number of rows.
func (x *Index) Len() int { return len(x.keys) }

// Key returns the key of row i. The result must not be modified.
func (x *Index) Key(i int) ir.Identifier { return x.keys[i] }

// Keys returns every key in row order. The slice is a copy; the keys are
// shared.
func (x *Index) Keys() []ir.Identifier { return slices.Clone(x.keys) }

// Value returns the value of row i.
func (x *Index) Value(i int) int { return x.values[i] }

// Values returns a copy of every row value in row order.
func (x *Index) Values() []int { return slices.Clone(x.values) }

// SetValue replaces the value of row i.
func (x *Index) SetValue(i, v int) { x.values[i] = v }

// Lookup returns the first row whose key equals id.
func (x *Index) Lookup(id ir.Identifier) (int, bool) {
	row, ok := x.first[id.Key()]
	return row, ok
}

// Get returns the value of the first row whose key equals id.
func (x *Index) Get(id ir.Identifier) (int, bool) {
	row, ok := x.Lookup(id)
	if !ok {
		return 0, false
	}
	return x.values[row], true
}

// Subset returns a new index holding the given rows in the given order.
func (x *Index) Subset(rows []int) *Index {
	out := &Index{
		names:  x.names,
		keys:   make([]ir.Identifier, len(rows)),
		values: make([]int, len(rows)),
		first:  make(map[string]int, len(rows)),
	}
	for i, r := range rows {
		out.keys[i] = x.keys[r]
		out.values[i] = x.values[r]
		if _, dup := out.first[x.keys[r].Key()]; !dup {
			out.first[x.keys[r].Key()] = i
		}
	}
	return out
}

// Clone returns a deep copy of x.
func (x *Index) Clone() *Index {
	out, _ := New(x.names, x.keys, x.values)
	return out
}

// Pad returns a copy of x widened to n levels. New levels hold ir.Blank and
// are named by their position. An index already n levels wide or wider is
// cloned unchanged.
func (x *Index) Pad(n int) *Index {
	if n <= x.Levels() {
		return x.Clone()
	}
	names := slices.Clone(x.names)
	for i := len(names); i < n; i++ {
		names = append(names, strconv.Itoa(i))
	}
	keys := make([]ir.Identifier, len(x.keys))
	for i, k := range x.keys {
		keys[i] = k.Pad(n)
	}
	out, _ := New(names, keys, x.values)
	return out
}

// Select is shorthand for Select(x, sel).
func (x *Index) Select(sel selector.Like) (*Index, error) {
	return Select(x, sel)
}
