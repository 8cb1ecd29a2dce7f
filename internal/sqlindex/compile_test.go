package sqlindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plsel/internal/selector"
)

func TestCompile(t *testing.T) {
	testCases := []struct {
		name       string
		sel        string
		wantSQL    string
		wantParams []any
	}{
		{
			name:       "literals",
			sel:        "/foo/0",
			wantSQL:    "l0 = ? AND l1 = ?",
			wantParams: []any{"foo", int64(0)},
		},
		{
			name:       "wildcard omitted",
			sel:        "/*/x",
			wantSQL:    "l1 = ?",
			wantParams: []any{"x"},
		},
		{
			name:    "all wildcards",
			sel:     "/*/*",
			wantSQL: "1 = 1",
		},
		{
			name:       "string set",
			sel:        "/[a,b,c]",
			wantSQL:    "l0 IN (?, ?, ?)",
			wantParams: []any{"a", "b", "c"},
		},
		{
			name:       "integer set",
			sel:        "/x[1,4]",
			wantSQL:    "l0 = ? AND l1 IN (?, ?)",
			wantParams: []any{"x", int64(1), int64(4)},
		},
		{
			name:       "bounded interval",
			sel:        "/x[2:5]",
			wantSQL:    "l0 = ? AND (typeof(l1) = 'integer' AND l1 >= ? AND l1 < ?)",
			wantParams: []any{"x", int64(2), int64(5)},
		},
		{
			name:       "unbounded interval",
			sel:        "/x[3:]",
			wantSQL:    "l0 = ? AND (typeof(l1) = 'integer' AND l1 >= ?)",
			wantParams: []any{"x", int64(3)},
		},
		{
			name:       "branches OR'ed",
			sel:        "/a,/b/1",
			wantSQL:    "(l0 = ?) OR (l0 = ? AND l1 = ?)",
			wantParams: []any{"a", "b", int64(1)},
		},
		{
			name:    "empty selector",
			sel:     "",
			wantSQL: "0 = 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := selector.Parse(tc.sel)
			require.NoError(t, err)

			sql, params, err := Compile(p, 2)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSQL, sql)
			assert.Equal(t, tc.wantParams, params)
		})
	}
}

func TestCompileLevelMismatch(t *testing.T) {
	p, err := selector.Parse("/a/b/c")
	require.NoError(t, err)

	_, _, err = Compile(p, 2)
	require.Error(t, err)
	assert.True(t, selector.IsLevelMismatchError(err))
}

func TestSelectSQLOrdersByID(t *testing.T) {
	sql := selectSQL("l0 = ?", 2)
	assert.Equal(t, "SELECT l0, l1, value FROM selector_keys WHERE l0 = ? ORDER BY id ASC", sql)
}
