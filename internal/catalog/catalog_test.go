package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plsel/internal/selector"
)

func assertLPU(t *testing.T, c *Catalog) {
	t.Helper()
	assert.Equal(t, []string{"all_ports", "in_gpot", "in_spike", "out_gpot"}, c.Names())
	assert.Equal(t, []string{"interface"}, c.GroupNames())
	assert.Equal(t, []string{"in_gpot", "in_spike", "out_gpot"}, c.Groups["interface"])
	assert.Equal(t, "/lpu/in/gpot[0:4]", c.Selectors["in_gpot"])
	assert.Empty(t, Validate(c))
}

func TestLoadFileCUE(t *testing.T) {
	c, err := LoadFile(filepath.Join("testdata", "lpu.cue"))
	require.NoError(t, err)
	assertLPU(t, c)
}

func TestLoadFileYAML(t *testing.T) {
	c, err := LoadFile(filepath.Join("testdata", "lpu.yaml"))
	require.NoError(t, err)
	assertLPU(t, c)
}

func TestLoadFileCUEPackageDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "selectors.cue"), []byte(`package ports

selectors: a: "/a[0:2]"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.cue"), []byte(`package ports

selectors: b: "/b"
groups: g: ["a", "b"]
`), 0o644))

	c, err := LoadFile(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Names())
	assert.Equal(t, []string{"a", "b"}, c.Groups["g"])
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)

	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o644))
	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeUnsupported)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("selector:\n  a: /a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeDecodeFailed)
}

func TestCompileCUERejectsNonString(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`selectors: a: 3`)
	require.NoError(t, v.Err())

	_, err := CompileCUE(v)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "selectors.a", ce.Field)
	assert.Equal(t, ErrUnsupportedValue, ce.Code)
}

func TestCompileCUEGroupMustBeList(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		selectors: a: "/a"
		groups: g: "a"
	`)
	require.NoError(t, v.Err())

	_, err := CompileCUE(v)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "groups.g", ce.Field)
}

func TestCompileCUENested(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		catalog: lpu: {
			selectors: x: "/x[0:3]"
		}
	`)
	require.NoError(t, v.Err())

	c, err := CompileCUE(v.LookupPath(cue.ParsePath("catalog.lpu")))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "/x[0:3]"}, c.Selectors)
	assert.Nil(t, c.Groups)
}

func TestCatalogSelector(t *testing.T) {
	c := New(map[string]string{
		"ports": "/a[0:3]",
		"any":   "/a/*",
	}, nil)

	sel, err := c.Selector("ports")
	require.NoError(t, err)
	assert.Equal(t, 3, sel.Count())

	again, err := c.Selector("ports")
	require.NoError(t, err)
	assert.Same(t, sel, again)

	_, err = c.Selector("any")
	assert.True(t, selector.IsAmbiguousError(err))

	_, err = c.Selector("nope")
	assert.Error(t, err)

	like, err := c.Like("any")
	require.NoError(t, err)
	ambiguous, err := selector.IsAmbiguous(like)
	require.NoError(t, err)
	assert.True(t, ambiguous)
}

func TestCatalogSelectorLiteralConcurrent(t *testing.T) {
	c := &Catalog{Selectors: map[string]string{"ports": "/a[0:3]"}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sel, err := c.Selector("ports")
			if assert.NoError(t, err) {
				assert.Equal(t, 3, sel.Count())
			}
		}()
	}
	wg.Wait()

	assert.Nil(t, c.compiled, "literal catalogs are never mutated")
}
