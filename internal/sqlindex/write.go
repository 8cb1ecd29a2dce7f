package sqlindex

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/plsel/internal/index"
	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// Insert appends a row. Keys shorter than the table are padded with
// ir.Blank; longer keys fail with ARITY_MISMATCH.
func (t *Table) Insert(ctx context.Context, key ir.Identifier, value int) error {
	return t.insert(ctx, t.db, key, value)
}

// Load appends every row of idx in row order within one transaction.
func (t *Table) Load(ctx context.Context, idx *index.Index) error {
	if idx.Levels() > t.levels {
		return selector.NewArityError(fmt.Sprintf(
			"index has %d levels, table has %d", idx.Levels(), t.levels))
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	for i := 0; i < idx.Len(); i++ {
		if err := t.insert(ctx, tx, idx.Key(i), idx.Value(i)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}

	slog.Debug("index loaded into key table", "rows", idx.Len())
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (t *Table) insert(ctx context.Context, db execer, key ir.Identifier, value int) error {
	if len(key) > t.levels {
		return selector.NewArityError(fmt.Sprintf(
			"key %s has %d levels, table has %d", key, len(key), t.levels))
	}
	key = key.Pad(t.levels)

	cols := append(levelColumns(t.levels), "value")
	args := make([]any, 0, len(cols))
	for _, a := range key {
		args = append(args, atomParam(a))
	}
	args = append(args, value)

	query := fmt.Sprintf("INSERT INTO selector_keys (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert key %s: %w", key, err)
	}
	return nil
}

// atomParam converts an atom to its SQL parameter.
func atomParam(a ir.Atom) any {
	switch v := a.(type) {
	case ir.Int:
		return int64(v)
	case ir.Str:
		return string(v)
	}
	return nil
}
