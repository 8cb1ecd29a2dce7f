package sqlindex

import (
	"fmt"
	"strings"

	"github.com/roach88/plsel/internal/ir"
	"github.com/roach88/plsel/internal/selector"
)

// Compile converts a parsed selector into a parameterized WHERE clause over
// a key table with the given number of levels. Returns (sql, params, error).
//
// Branches are OR'ed; each branch is an AND of per-level predicates and
// constrains only as many levels as it has tokens. Values are never
// interpolated.
func Compile(p ir.Parsed, levels int) (string, []any, error) {
	if n := p.MaxLevels(); n > levels {
		return "", nil, selector.NewLevelMismatchError(p.String(), n, levels)
	}
	if len(p) == 0 {
		return "0 = 1", nil, nil
	}

	var parts []string
	var params []any
	for _, branch := range p {
		sql, branchParams, err := compileBranch(branch, levels)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, branchParams...)
	}

	if len(parts) == 1 {
		return parts[0], params, nil
	}
	return "(" + strings.Join(parts, ") OR (") + ")", params, nil
}

// compileBranch compiles one branch. The empty branch matches only
// zero-level keys.
func compileBranch(branch ir.Branch, levels int) (string, []any, error) {
	if len(branch) == 0 {
		if levels == 0 {
			return "1 = 1", nil, nil
		}
		return "0 = 1", nil, nil
	}

	var parts []string
	var params []any
	for i, tok := range branch {
		sql, tokParams, err := compileToken(fmt.Sprintf("l%d", i), tok)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		parts = append(parts, sql)
		params = append(params, tokParams...)
	}

	if len(parts) == 0 {
		return "1 = 1", nil, nil
	}
	return strings.Join(parts, " AND "), params, nil
}

// compileToken compiles one level constraint on col. A wildcard compiles
// to the empty string.
func compileToken(col string, tok ir.Token) (string, []any, error) {
	switch t := tok.(type) {
	case ir.Wildcard:
		return "", nil, nil
	case ir.Str:
		return col + " = ?", []any{string(t)}, nil
	case ir.Int:
		return col + " = ?", []any{int64(t)}, nil
	case ir.StrSet:
		params := make([]any, len(t))
		for i, s := range t {
			params[i] = s
		}
		return inList(col, params)
	case ir.IntSet:
		params := make([]any, len(t))
		for i, v := range t {
			params[i] = v
		}
		return inList(col, params)
	case ir.Interval:
		// typeof guard: SQLite orders every string above every integer
		sql := fmt.Sprintf("typeof(%s) = 'integer'", col)
		var params []any
		if t.Start != nil {
			sql += fmt.Sprintf(" AND %s >= ?", col)
			params = append(params, *t.Start)
		}
		if t.Stop != nil {
			sql += fmt.Sprintf(" AND %s < ?", col)
			params = append(params, *t.Stop)
		}
		return "(" + sql + ")", params, nil
	default:
		return "", nil, fmt.Errorf("unsupported token type: %T", tok)
	}
}

func inList(col string, params []any) (string, []any, error) {
	if len(params) == 0 {
		return "", nil, fmt.Errorf("empty set on %s", col)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(params)), ", ")
	return fmt.Sprintf("%s IN (%s)", col, placeholders), params, nil
}

// selectSQL builds the full query for a WHERE clause.
// MANDATORY: every query is ordered by row id.
func selectSQL(where string, levels int) string {
	cols := append(levelColumns(levels), "value")
	return fmt.Sprintf("SELECT %s FROM selector_keys WHERE %s ORDER BY id ASC",
		strings.Join(cols, ", "), where)
}
