package selector

import (
	"github.com/roach88/plsel/internal/ir"
)

// Expand returns the identifiers an unambiguous selector denotes.
//
// Branches are expanded in order; within a branch the leftmost level varies
// slowest. Identifiers shorter than padLen are right-padded with ir.Blank.
//
// When nothing is denoted the result is a single zero-length identifier.
// That sentinel is not a real match; use Count to test for emptiness.
func Expand(sel Like, padLen int) ([]ir.Identifier, error) {
	p, err := ToParsed(sel)
	if err != nil {
		return nil, err
	}
	if Ambiguous(p) {
		return nil, NewAmbiguousError("expand", describe(sel))
	}

	ids := identifiers(p)
	if len(ids) == 0 {
		return []ir.Identifier{{}}, nil
	}
	if padLen > 0 {
		for i, id := range ids {
			ids[i] = id.Pad(padLen)
		}
	}
	return ids, nil
}

// Pad expands sel and right-pads every identifier to maxLen atoms. A maxLen
// of 0 pads to the longest expanded identifier.
func Pad(sel Like, maxLen int) ([]ir.Identifier, error) {
	ids, err := Expand(sel, 0)
	if err != nil {
		return nil, err
	}
	if len(ids) == 1 && len(ids[0]) == 0 {
		return ids, nil
	}
	if maxLen <= 0 {
		for _, id := range ids {
			maxLen = max(maxLen, len(id))
		}
	}
	for i, id := range ids {
		ids[i] = id.Pad(maxLen)
	}
	return ids, nil
}

// Count returns the number of identifiers an unambiguous selector denotes.
// The empty selector counts 0. Identifiers denoted by more than one branch
// are counted once per branch, so "/a,/a" counts 2.
func Count(sel Like) (int, error) {
	p, err := ToParsed(sel)
	if err != nil {
		return 0, err
	}
	if Ambiguous(p) {
		return 0, NewAmbiguousError("count", describe(sel))
	}
	return countParsed(p), nil
}

// expandParsed expands p, failing with AMBIGUOUS_SELECTOR when needed.
// Zero-length identifiers are dropped, so the empty selector yields none.
func expandParsed(p ir.Parsed) ([]ir.Identifier, error) {
	if Ambiguous(p) {
		return nil, NewAmbiguousError("expand", p.String())
	}
	return identifiers(p), nil
}

// identifiers expands an unambiguous p. Zero-length identifiers are dropped.
func identifiers(p ir.Parsed) []ir.Identifier {
	var out []ir.Identifier
	for _, branch := range p {
		if len(branch) == 0 {
			continue
		}
		levels := make([][]ir.Atom, len(branch))
		for i, tok := range branch {
			levels[i] = levelValues(tok)
		}
		out = appendProduct(out, levels)
	}
	return out
}

// countParsed computes the expansion size without materializing it.
func countParsed(p ir.Parsed) int {
	total := 0
	for _, branch := range p {
		if len(branch) == 0 {
			continue
		}
		n := 1
		for _, tok := range branch {
			n *= len(levelValues(tok))
		}
		total += n
	}
	return total
}

// levelValues enumerates the concrete atoms a non-ambiguous token admits.
func levelValues(tok ir.Token) []ir.Atom {
	switch t := tok.(type) {
	case ir.Str:
		return []ir.Atom{t}
	case ir.Int:
		return []ir.Atom{t}
	case ir.StrSet:
		out := make([]ir.Atom, len(t))
		for i, s := range t {
			out[i] = ir.Str(s)
		}
		return out
	case ir.IntSet:
		out := make([]ir.Atom, len(t))
		for i, v := range t {
			out[i] = ir.Int(v)
		}
		return out
	case ir.Interval:
		vals, err := t.Values()
		if err != nil {
			return nil
		}
		out := make([]ir.Atom, len(vals))
		for i, v := range vals {
			out[i] = ir.Int(v)
		}
		return out
	}
	return nil
}

// appendProduct appends the Cartesian product of levels to out in
// lexicographic order (first level slowest).
func appendProduct(out []ir.Identifier, levels [][]ir.Atom) []ir.Identifier {
	for _, l := range levels {
		if len(l) == 0 {
			return out
		}
	}
	idx := make([]int, len(levels))
	for {
		id := make(ir.Identifier, len(levels))
		for i, l := range levels {
			id[i] = l[idx[i]]
		}
		out = append(out, id)

		i := len(levels) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(levels[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out
		}
	}
}
