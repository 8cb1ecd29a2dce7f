package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plsel/internal/ir"
)

func TestNewSelector(t *testing.T) {
	sel, err := New("/bar,/foo[0:2]")
	require.NoError(t, err)

	assert.Equal(t, "/bar,/foo[0:2]", sel.String())
	assert.Equal(t, 2, sel.MaxLevels())
	assert.Equal(t, 3, sel.Count())
	assert.False(t, sel.Empty())
	assert.Equal(t, []ir.Identifier{ir.ID("bar"), ir.ID("foo", 0), ir.ID("foo", 1)}, sel.Expanded())
}

func TestNewSelectorRejectsAmbiguous(t *testing.T) {
	for _, in := range []string{"/foo/*", "/foo[1:]"} {
		_, err := New(in)
		require.Error(t, err)
		assert.True(t, IsAmbiguousError(err))
	}

	assert.Panics(t, func() { MustNew("/foo/*") })
}

func TestEmptySelector(t *testing.T) {
	sel, err := New("")
	require.NoError(t, err)
	assert.True(t, sel.Empty())
	assert.Zero(t, sel.Count())
	assert.Zero(t, sel.MaxLevels())
	assert.Empty(t, sel.Expanded())
}

func TestFromLike(t *testing.T) {
	sel, err := FromLike(Identifiers{ir.ID("a", 0), ir.ID("a", 1)})
	require.NoError(t, err)
	assert.Equal(t, "/a/0,/a/1", sel.String())
	assert.Equal(t, 2, sel.Count())

	same := MustNew("/x")
	got, err := FromLike(same)
	require.NoError(t, err)
	assert.Same(t, same, got)

	_, err = FromLike(Parsed(ir.Parsed{{ir.Wildcard{}}}))
	assert.True(t, IsAmbiguousError(err))
}

func TestSelectorAdd(t *testing.T) {
	a := MustNew("/a,/b")
	b := MustNew("/x[0:2]")

	sum := a.Add(b)
	assert.Equal(t, a.Count()*b.Count(), sum.Count())
	assert.Equal(t, []ir.Identifier{
		ir.ID("a", "x", 0), ir.ID("a", "x", 1),
		ir.ID("b", "x", 0), ir.ID("b", "x", 1),
	}, sum.Expanded())

	reparsed, err := Expand(Text(sum.String()), 0)
	require.NoError(t, err)
	assert.Equal(t, sum.Expanded(), reparsed)

	empty := MustNew("")
	assert.Same(t, b, empty.Add(b))
	assert.Same(t, a, a.Add(empty))
}

func TestSelectorConcat(t *testing.T) {
	a := MustNew("/a[0:2]")
	b := MustNew("/[x,y]")

	zipped, err := a.Concat(b)
	require.NoError(t, err)
	assert.Equal(t, []ir.Identifier{ir.ID("a", 0, "x"), ir.ID("a", 1, "y")}, zipped.Expanded())

	reparsed, err := Expand(Text(zipped.String()), 0)
	require.NoError(t, err)
	assert.Equal(t, zipped.Expanded(), reparsed)

	_, err = a.Concat(MustNew("/z[0:3]"))
	assert.True(t, IsArityError(err))
}

func TestSelectorUnion(t *testing.T) {
	u := MustNew("/a+/b").Union(MustNew("/c"))
	assert.Equal(t, []ir.Identifier{ir.ID("a", "b"), ir.ID("c")}, u.Expanded())
	assert.Equal(t, 2, u.MaxLevels())

	reparsed, err := Expand(Text(u.String()), 0)
	require.NoError(t, err)
	assert.Equal(t, u.Expanded(), reparsed)
}

func TestSelectorIsLike(t *testing.T) {
	sel := MustNew("/a[0:3]")
	n, err := Count(sel)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	in, err := IsIn(Text("/a/1"), sel)
	require.NoError(t, err)
	assert.True(t, in)
}
