// Package catalog loads named selectors from CUE or YAML files.
//
// A catalog maps selector names to selector strings and declares groups of
// selector names whose members must be pairwise disjoint, such as the
// input and output port sets of one component:
//
//	selectors: {
//		in_gpot:  "/lpu/in/gpot[0:4]"
//		out_gpot: "/lpu/out/gpot[0:2]"
//	}
//	groups: ports: ["in_gpot", "out_gpot"]
package catalog

import (
	"fmt"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/roach88/plsel/internal/selector"
)

// Catalog is a set of named selectors and disjointness groups.
type Catalog struct {
	// Selectors maps each name to its selector text.
	Selectors map[string]string `yaml:"selectors" json:"selectors"`

	// Groups maps each group name to the selector names it contains.
	Groups map[string][]string `yaml:"groups,omitempty" json:"groups,omitempty"`

	compiled *xsync.MapOf[string, *selector.Selector]
}

// New creates a catalog from selector and group maps. The maps are used
// as-is; callers should not modify them afterwards.
func New(selectors map[string]string, groups map[string][]string) *Catalog {
	if selectors == nil {
		selectors = map[string]string{}
	}
	return &Catalog{
		Selectors: selectors,
		Groups:    groups,
		compiled:  xsync.NewMapOf[string, *selector.Selector](),
	}
}

// Names returns the selector names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Selectors))
	for name := range c.Selectors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GroupNames returns the group names in sorted order.
func (c *Catalog) GroupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for name := range c.Groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Like returns the named selector text for matching. It may be ambiguous.
func (c *Catalog) Like(name string) (selector.Like, error) {
	s, ok := c.Selectors[name]
	if !ok {
		return nil, fmt.Errorf("unknown selector %q", name)
	}
	return selector.Text(s), nil
}

// Selector returns the named selector validated for expansion. An
// ambiguous entry fails with AMBIGUOUS_SELECTOR. Safe for concurrent use.
//
// Results are cached on catalogs built by New or a loader; a Catalog
// written as a struct literal has no cache and compiles on every call.
func (c *Catalog) Selector(name string) (*selector.Selector, error) {
	if c.compiled != nil {
		if sel, ok := c.compiled.Load(name); ok {
			return sel, nil
		}
	}

	s, ok := c.Selectors[name]
	if !ok {
		return nil, fmt.Errorf("unknown selector %q", name)
	}
	sel, err := selector.New(s)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", name, err)
	}
	if c.compiled == nil {
		return sel, nil
	}
	sel, _ = c.compiled.LoadOrStore(name, sel)
	return sel, nil
}
