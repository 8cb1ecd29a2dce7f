// Package portmap assigns dense integer positions to the identifiers of a
// selector and translates between the two.
//
// A PortMapper pairs each expanded identifier ("port") with a position.
// Positions need not be unique. A DataMapper additionally carries a flat
// data array indexed by position.
package portmap

import (
	"fmt"
	"slices"

	"github.com/roach88/plsel/internal/index"
	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// PortMapper maps identifiers to positions. Rows keep the order in which
// the selector expands.
type PortMapper struct {
	idx *index.Index
}

// New builds a mapper over the expansion of sel. With nil positions,
// identifier i gets position i; otherwise positions must have one entry per
// identifier.
func New(sel selector.Like, positions []int) (*PortMapper, error) {
	idx, err := index.MakeIndex(sel, nil)
	if err != nil {
		return nil, err
	}
	if positions != nil {
		if len(positions) != idx.Len() {
			return nil, selector.NewLengthError("positions", len(positions), idx.Len())
		}
		for i, p := range positions {
			idx.SetValue(i, p)
		}
	}
	return &PortMapper{idx: idx}, nil
}

// Len returns the number of ports.
func (m *PortMapper) Len() int { return m.idx.Len() }

// Levels returns the key width of the ports.
func (m *PortMapper) Levels() int { return m.idx.Levels() }

// Ports returns every port in row order. Shorter identifiers are padded
// with ir.Blank to the mapper's width.
func (m *PortMapper) Ports() []ir.Identifier { return m.idx.Keys() }

// Positions returns every position in row order.
func (m *PortMapper) Positions() []int { return m.idx.Values() }

// PortsToInds returns the positions of the ports matched by sel, in row
// order. sel may be ambiguous. Matching nothing is not an error.
func (m *PortMapper) PortsToInds(sel selector.Like) ([]int, error) {
	sub, err := m.idx.Select(sel)
	if err != nil {
		return nil, err
	}
	return sub.Values(), nil
}

// IndsToPorts returns the ports whose position is in inds, in row order
// rather than the order of inds.
func (m *PortMapper) IndsToPorts(inds []int) []ir.Identifier {
	want := make(map[int]struct{}, len(inds))
	for _, i := range inds {
		want[i] = struct{}{}
	}
	out := make([]ir.Identifier, 0, len(inds))
	for row := 0; row < m.idx.Len(); row++ {
		if _, ok := want[m.idx.Value(row)]; ok {
			out = append(out, m.idx.Key(row))
		}
	}
	return out
}

// GetIndex returns the sub-index of ports matched by sel, with their
// positions as values.
func (m *PortMapper) GetIndex(sel selector.Like) (*index.Index, error) {
	return m.idx.Select(sel)
}

// SetIndex reassigns the positions of the ports matched by sel, in row
// order. positions must have one entry per matched port.
func (m *PortMapper) SetIndex(sel selector.Like, positions []int) error {
	rows, err := index.Rows(m.idx, sel, 0, m.idx.Levels())
	if err != nil {
		return err
	}
	if len(positions) != len(rows) {
		return selector.NewLengthError("positions", len(positions), len(rows))
	}
	for i, r := range rows {
		m.idx.SetValue(r, positions[i])
	}
	return nil
}

// Clone returns an independent copy of m.
func (m *PortMapper) Clone() *PortMapper {
	return &PortMapper{idx: m.idx.Clone()}
}

// Equal reports whether m and other pair the same ports with the same
// positions, regardless of row order.
func (m *PortMapper) Equal(other *PortMapper) bool {
	return samePairs(m.idx, other.idx, func(ra, rb int) bool {
		return m.idx.Value(ra) == other.idx.Value(rb)
	})
}

func (m *PortMapper) String() string {
	return fmt.Sprintf("PortMapper(%d ports, %d levels)", m.Len(), m.Levels())
}

// samePairs compares two indices as multisets of (key, value) pairs, using
// eq to compare the values of rows whose keys coincide.
func samePairs(a, b *index.Index, eq func(ra, rb int) bool) bool {
	if a.Len() != b.Len() || a.Levels() != b.Levels() {
		return false
	}
	pending := make(map[string][]int, b.Len())
	for r := 0; r < b.Len(); r++ {
		k := b.Key(r).Key()
		pending[k] = append(pending[k], r)
	}
	for r := 0; r < a.Len(); r++ {
		k := a.Key(r).Key()
		candidates := pending[k]
		i := slices.IndexFunc(candidates, func(rb int) bool { return eq(r, rb) })
		if i < 0 {
			return false
		}
		pending[k] = slices.Delete(candidates, i, i+1)
	}
	return true
}
