package portmap

import (
	"fmt"
	"slices"

	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// DataMapper is a PortMapper with a data array indexed by position.
type DataMapper[T comparable] struct {
	*PortMapper
	data []T
}

// NewData builds a data-carrying mapper. data must have one entry per
// identifier of sel; positions follow New and must index into data.
// data is copied.
func NewData[T comparable](sel selector.Like, data []T, positions []int) (*DataMapper[T], error) {
	pm, err := New(sel, positions)
	if err != nil {
		return nil, err
	}
	if len(data) != pm.Len() {
		return nil, selector.NewLengthError("data", len(data), pm.Len())
	}
	if err := checkPositions(pm.Positions(), len(data)); err != nil {
		return nil, err
	}
	return &DataMapper[T]{PortMapper: pm, data: slices.Clone(data)}, nil
}

// checkPositions fails if any position does not index a data array of
// length n.
func checkPositions(positions []int, n int) error {
	for _, p := range positions {
		if p < 0 || p >= n {
			return fmt.Errorf("position %d out of range for %d data values", p, n)
		}
	}
	return nil
}

// SetIndex is PortMapper.SetIndex restricted to positions inside the data
// array. On error no position is changed.
func (d *DataMapper[T]) SetIndex(sel selector.Like, positions []int) error {
	if err := checkPositions(positions, len(d.data)); err != nil {
		return err
	}
	return d.PortMapper.SetIndex(sel, positions)
}

// Data returns a copy of the data array in position order.
func (d *DataMapper[T]) Data() []T { return slices.Clone(d.data) }

// Get returns the data of the ports matched by sel, in row order.
func (d *DataMapper[T]) Get(sel selector.Like) ([]T, error) {
	inds, err := d.PortsToInds(sel)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(inds))
	for i, p := range inds {
		out[i] = d.data[p]
	}
	return out, nil
}

// Set writes values to the ports matched by sel, in row order. values must
// have one entry per matched port.
func (d *DataMapper[T]) Set(sel selector.Like, values []T) error {
	inds, err := d.PortsToInds(sel)
	if err != nil {
		return err
	}
	if len(values) != len(inds) {
		return selector.NewLengthError("values", len(values), len(inds))
	}
	for i, p := range inds {
		d.data[p] = values[i]
	}
	return nil
}

// Fill writes v to every port matched by sel.
func (d *DataMapper[T]) Fill(sel selector.Like, v T) error {
	inds, err := d.PortsToInds(sel)
	if err != nil {
		return err
	}
	for _, p := range inds {
		d.data[p] = v
	}
	return nil
}

// PositionsWhere returns, in ascending order, the positions whose data
// satisfies f.
func (d *DataMapper[T]) PositionsWhere(f func(T) bool) []int {
	var out []int
	for p, v := range d.data {
		if f(v) {
			out = append(out, p)
		}
	}
	return out
}

// PortsWhere returns, in row order, the ports whose data satisfies f.
func (d *DataMapper[T]) PortsWhere(f func(T) bool) []ir.Identifier {
	var out []ir.Identifier
	for row := 0; row < d.idx.Len(); row++ {
		if f(d.data[d.idx.Value(row)]) {
			out = append(out, d.idx.Key(row))
		}
	}
	return out
}

// NonZero returns the ports whose data is not the zero value of T.
func (d *DataMapper[T]) NonZero() []ir.Identifier {
	var zero T
	return d.PortsWhere(func(v T) bool { return v != zero })
}

// Clone returns an independent copy of d.
func (d *DataMapper[T]) Clone() *DataMapper[T] {
	return &DataMapper[T]{PortMapper: d.PortMapper.Clone(), data: slices.Clone(d.data)}
}

// Equal reports whether d and other pair the same ports with equal data,
// regardless of row order or position assignment.
func (d *DataMapper[T]) Equal(other *DataMapper[T]) bool {
	return samePairs(d.idx, other.idx, func(ra, rb int) bool {
		return d.data[d.idx.Value(ra)] == other.data[other.idx.Value(rb)]
	})
}
