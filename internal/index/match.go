package index

import (
	"slices"

	"github.com/roach88/plsel/internal/ir"
)

// MatchToken reports whether atom satisfies one level constraint.
//
// Integer tokens never match string atoms and vice versa, so Str("1") and
// Int(1) are distinct keys.
func MatchToken(tok ir.Token, atom ir.Atom) bool {
	switch t := tok.(type) {
	case ir.Wildcard:
		return true
	case ir.Str:
		return atom == ir.Atom(t)
	case ir.Int:
		return atom == ir.Atom(t)
	case ir.StrSet:
		s, ok := atom.(ir.Str)
		return ok && slices.Contains(t, string(s))
	case ir.IntSet:
		v, ok := atom.(ir.Int)
		return ok && slices.Contains(t, int64(v))
	case ir.Interval:
		v, ok := atom.(ir.Int)
		return ok && t.Contains(int64(v))
	}
	return false
}

// MatchBranch reports whether key satisfies every token of branch, level by
// level. A branch longer than key never matches. The empty branch matches
// only the zero-length key.
func MatchBranch(branch ir.Branch, key ir.Identifier) bool {
	if len(branch) == 0 {
		return len(key) == 0
	}
	if len(branch) > len(key) {
		return false
	}
	for i, tok := range branch {
		if !MatchToken(tok, key[i]) {
			return false
		}
	}
	return true
}

// Match reports whether key matches any branch of p.
func Match(p ir.Parsed, key ir.Identifier) bool {
	for _, branch := range p {
		if MatchBranch(branch, key) {
			return true
		}
	}
	return false
}
