package sqlindex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/plsel/internal/index"
	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// Len returns the number of rows.
func (t *Table) Len(ctx context.Context) (int, error) {
	var n int
	if err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM selector_keys").Scan(&n); err != nil {
		return 0, fmt.Errorf("count keys: %w", err)
	}
	return n, nil
}

// All returns every row as an index, in insertion order.
func (t *Table) All(ctx context.Context) (*index.Index, error) {
	return t.query(ctx, "1 = 1", nil)
}

// Select returns the rows whose key matches sel, in insertion order.
// sel may be ambiguous. A selector deeper than the table fails with
// LEVEL_MISMATCH.
func (t *Table) Select(ctx context.Context, sel selector.Like) (*index.Index, error) {
	p, err := selector.ToParsed(sel)
	if err != nil {
		return nil, err
	}
	where, params, err := Compile(p, t.levels)
	if err != nil {
		return nil, err
	}

	slog.Debug("key table select",
		"where", where,
		"params", len(params),
	)
	return t.query(ctx, where, params)
}

func (t *Table) query(ctx context.Context, where string, params []any) (*index.Index, error) {
	rows, err := t.db.QueryContext(ctx, selectSQL(where, t.levels), params...)
	if err != nil {
		return nil, fmt.Errorf("query keys: %w", err)
	}
	defer rows.Close()

	var keys []ir.Identifier
	var values []int
	for rows.Next() {
		raw := make([]any, t.levels)
		dest := make([]any, t.levels+1)
		for i := range raw {
			dest[i] = &raw[i]
		}
		var value int
		dest[t.levels] = &value
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}

		key := make(ir.Identifier, t.levels)
		for i, v := range raw {
			a, err := scanAtom(v)
			if err != nil {
				return nil, fmt.Errorf("scan key level %d: %w", i, err)
			}
			key[i] = a
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}

	return index.New(index.DefaultNames(t.levels), keys, values)
}

// scanAtom converts a scanned column value back into an atom.
func scanAtom(v any) (ir.Atom, error) {
	switch x := v.(type) {
	case int64:
		return ir.Int(x), nil
	case string:
		return ir.Str(x), nil
	case []byte:
		return ir.Str(string(x)), nil
	default:
		return nil, fmt.Errorf("unexpected column type %T", v)
	}
}
