package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plsel/internal/ir"
)

func TestIsAmbiguous(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"/foo/*", true},
		{"/foo[0:2]", false},
		{"/foo[5:]", true},
		{"/foo[:5]", false},
		{"/a,/b/*", true},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := IsAmbiguous(Text(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := IsAmbiguous(Text("/a["))
	assert.True(t, IsTokenizeError(err))
}

func TestIsEmpty(t *testing.T) {
	for in, want := range map[string]bool{"": true, "  ": true, "/a": false} {
		got, err := IsEmpty(Text(in))
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	got, err := IsEmpty(Parsed(ir.Parsed{}))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsEmpty(Identifiers(nil))
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIsExpandable(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"/foo[0:2]", true},
		{"/a,/b", true},
		{"/a", false},
		{"/a[0:1]", false},
		{"/a[0,0]", false},
		{"/a,/a", false},
		{"/[x,y]", true},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := IsExpandable(Text(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := IsExpandable(Text("/a/*"))
	assert.True(t, IsAmbiguousError(err))
}

func TestIsSelector(t *testing.T) {
	assert.True(t, IsSelector(Text("/a/*[0:2]")))
	assert.True(t, IsSelector(Text("")))
	assert.False(t, IsSelector(Text("/a,")))
	assert.False(t, IsSelector(Text("a")))
	assert.True(t, IsSelector(Identifiers{ir.ID("a", 1)}))
	assert.False(t, IsSelector(Parsed(ir.Parsed{{ir.StrSet{}}})))
	assert.False(t, IsSelector(Parsed(ir.Parsed{{nil}})))
}

func TestIsIdentifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Like
		want bool
	}{
		{"text literal path", Text("/foo/0"), true},
		{"text with set", Text("/foo[0,1]"), false},
		{"text with interval", Text("/foo[0:1]"), false},
		{"text with comma", Text("/a,/b"), false},
		{"text empty", Text(""), false},
		{"text invalid", Text("/foo/"), false},
		{"single identifier", Identifiers{ir.ID("a", 1)}, true},
		{"two identifiers", Identifiers{ir.ID("a"), ir.ID("b")}, false},
		{"empty identifier", Identifiers{{}}, false},
		{"parsed literal", Parsed(ir.Parsed{{ir.Str("a"), ir.Int(2)}}), true},
		{"parsed wildcard", Parsed(ir.Parsed{{ir.Wildcard{}}}), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsIdentifier(tc.in))
		})
	}
}

func TestMaxLevels(t *testing.T) {
	n, err := MaxLevels(Text("/bar,/foo[0:2]/x"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = MaxLevels(Text(""))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = MaxLevels(Identifiers{ir.ID("a"), ir.ID("a", 1, 2, 3)})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = MaxLevels(MustNew("/a/b"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = MaxLevels(Text("/a,,"))
	assert.Error(t, err)
}

func TestAreDisjoint(t *testing.T) {
	testCases := []struct {
		name string
		sels []string
		want bool
	}{
		{"single", []string{"/a[0:3]"}, true},
		{"self", []string{"/a[0:3]", "/a[0:3]"}, false},
		{"disjoint", []string{"/a[0:3]", "/a[3:6]", "/b[0:3]"}, true},
		{"overlap", []string{"/a[0:3]", "/b", "/a/2"}, false},
		{"empty with anything", []string{"", "/a[0:3]"}, true},
		{"empty with itself", []string{"", ""}, true},
		{"duplicates inside one selector", []string{"/a,/a", "/b"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sels := make([]Like, len(tc.sels))
			for i, s := range tc.sels {
				sels[i] = Text(s)
			}
			got, err := AreDisjoint(sels...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := AreDisjoint(Text("/a"), Text("/b/*"))
	assert.True(t, IsAmbiguousError(err))
}

func TestIsIn(t *testing.T) {
	testCases := []struct {
		s, t string
		want bool
	}{
		{"/a[0:2]", "/a[0:2]", true},
		{"/a/1", "/a[0:2]", true},
		{"/a[0:3]", "/a[0:2]", false},
		{"", "/a[0:2]", true},
		{"", "/any/*", true},
		{"/b", "/a,/b", true},
		{"/a[0:2]", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.s+" in "+tc.t, func(t *testing.T) {
			got, err := IsIn(Text(tc.s), Text(tc.t))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := IsIn(Text("/a"), Text("/a/*"))
	assert.True(t, IsAmbiguousError(err))
}

func TestContainmentImpliesCount(t *testing.T) {
	pairs := [][2]string{
		{"/a/1", "/a[0:2]"},
		{"/x[1,3]", "/x[0:5]"},
		{"/b", "/a,/b,/c"},
	}
	for _, pr := range pairs {
		in, err := IsIn(Text(pr[0]), Text(pr[1]))
		require.NoError(t, err)
		require.True(t, in)

		cs, err := Count(Text(pr[0]))
		require.NoError(t, err)
		ct, err := Count(Text(pr[1]))
		require.NoError(t, err)
		assert.LessOrEqual(t, cs, ct)
	}
}
