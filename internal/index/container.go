package index

import (
	"fmt"

	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// Keyed is a read-only sequence of rows with fixed-width identifier keys.
type Keyed interface {
	// Levels returns the key width shared by every row.
	Levels() int

	// Len returns the number of rows.
	Len() int

	// Key returns the key of row i.
	Key(i int) ir.Identifier
}

// Container is a Keyed collection that can produce a filtered copy of
// itself. C is the concrete container type, so Select returns the same kind
// of container it was given.
type Container[C any] interface {
	Keyed

	// Subset returns a new container holding the given rows in the given
	// order. The receiver is not modified.
	Subset(rows []int) C
}

// Rows returns, in container order, the rows whose key levels [start, stop)
// match sel.
//
// Fails with LEVEL_MISMATCH when sel has more levels than the range.
func Rows(c Keyed, sel selector.Like, start, stop int) ([]int, error) {
	if start < 0 || stop > c.Levels() || start > stop {
		return nil, fmt.Errorf("invalid level range [%d:%d) for %d-level key", start, stop, c.Levels())
	}
	p, err := selector.ToParsed(sel)
	if err != nil {
		return nil, err
	}
	if n := p.MaxLevels(); n > stop-start {
		return nil, selector.NewLevelMismatchError(p.String(), n, stop-start)
	}

	rows := make([]int, 0)
	for i := 0; i < c.Len(); i++ {
		if Match(p, c.Key(i)[start:stop]) {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// Select returns the rows of c whose full key matches sel.
func Select[C Container[C]](c C, sel selector.Like) (C, error) {
	return SelectRange(c, sel, 0, c.Levels())
}

// SelectRange returns the rows of c whose key levels [start, stop) match sel.
func SelectRange[C Container[C]](c C, sel selector.Like, start, stop int) (C, error) {
	rows, err := Rows(c, sel, start, stop)
	if err != nil {
		var zero C
		return zero, err
	}
	return c.Subset(rows), nil
}
