package selector

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/plsel/internal/ir"
)

// Collapse renders identifiers of equal length as compact selector text.
//
// Each level's distinct values become an interval when they are
// consecutive integers, an integer set otherwise, a single string or a
// string set. A level mixing integers and strings yields one alternative
// per kind, so the output branch count can grow multiplicatively and is not
// guaranteed minimal. When the per-level product would denote identifiers
// that were not given, the input is split on its first level and each part
// collapsed separately, so Expand(Collapse(ids)) always denotes exactly ids.
//
// String atoms that are not Renderable, including the blank padding atom,
// fail with UNRENDERABLE_ATOM; trim padded identifiers before collapsing.
func Collapse(ids []ir.Identifier) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	n := len(ids[0])
	for _, id := range ids[1:] {
		if len(id) != n {
			return "", NewArityError(fmt.Sprintf(
				"cannot collapse identifiers of different lengths (%d and %d)", n, len(id)))
		}
	}
	if n == 0 {
		return "", nil
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]ir.Identifier, 0, len(ids))
	for _, id := range ids {
		for _, a := range id {
			if s, ok := a.(ir.Str); ok && !Renderable(string(s)) {
				return "", NewUnrenderableError(string(s))
			}
		}
		k := id.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, id)
	}

	return strings.Join(collapseGroup(unique), ","), nil
}

// collapseGroup collapses distinct identifiers of one non-zero length into
// branch strings.
func collapseGroup(ids []ir.Identifier) []string {
	n := len(ids[0])
	levels := make([][]ir.Atom, n)
	for j := 0; j < n; j++ {
		seen := make(map[ir.Atom]struct{})
		for _, id := range ids {
			if _, dup := seen[id[j]]; !dup {
				seen[id[j]] = struct{}{}
				levels[j] = append(levels[j], id[j])
			}
		}
	}

	size := 1
	for _, l := range levels {
		size *= len(l)
	}
	if size == len(ids) {
		reps := make([][]string, n)
		for j, l := range levels {
			reps[j] = collapseLevel(l)
		}
		return joinProduct(reps)
	}

	heads := slices.Clone(levels[0])
	slices.SortFunc(heads, ir.CompareAtoms)
	var out []string
	for _, head := range heads {
		var tails []ir.Identifier
		for _, id := range ids {
			if id[0] == head {
				tails = append(tails, id[1:])
			}
		}
		prefix := renderRep(collapseLevel([]ir.Atom{head})[0])
		for _, rest := range collapseGroup(tails) {
			out = append(out, prefix+rest)
		}
	}
	return out
}

// collapseLevel renders the distinct values of one level. The result has one
// entry, or two when integers and strings are mixed.
func collapseLevel(level []ir.Atom) []string {
	var ints []int64
	var strs []string
	for _, a := range level {
		switch v := a.(type) {
		case ir.Int:
			ints = append(ints, int64(v))
		case ir.Str:
			strs = append(strs, string(v))
		}
	}
	slices.Sort(ints)
	slices.Sort(strs)

	var out []string
	if len(ints) > 0 {
		if consecutive(ints) {
			out = append(out, fmt.Sprintf("[%d:%d]", ints[0], ints[len(ints)-1]+1))
		} else {
			parts := make([]string, len(ints))
			for i, v := range ints {
				parts[i] = strconv.FormatInt(v, 10)
			}
			out = append(out, "["+strings.Join(parts, ",")+"]")
		}
	}
	switch {
	case len(strs) == 1:
		out = append(out, strs[0])
	case len(strs) > 1:
		out = append(out, "["+strings.Join(strs, ",")+"]")
	}
	return out
}

// consecutive reports whether sorted values increase by exactly one.
func consecutive(sorted []int64) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// renderRep prefixes scalar string levels with '/'.
func renderRep(rep string) string {
	if strings.HasPrefix(rep, "[") {
		return rep
	}
	return "/" + rep
}

// joinProduct emits one selector branch per combination of level reps.
func joinProduct(reps [][]string) []string {
	out := []string{""}
	for _, level := range reps {
		next := make([]string, 0, len(out)*len(level))
		for _, prefix := range out {
			for _, rep := range level {
				next = append(next, prefix+renderRep(rep))
			}
		}
		out = next
	}
	return out
}
