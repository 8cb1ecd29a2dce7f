package selector

import (
	"github.com/roach88/plsel/internal/ir"
)

// Ambiguous reports whether any branch of p contains a wildcard or an
// interval without an upper bound. Ambiguous selectors can be matched but
// not expanded.
func Ambiguous(p ir.Parsed) bool {
	for _, branch := range p {
		for _, tok := range branch {
			switch t := tok.(type) {
			case ir.Wildcard:
				return true
			case ir.Interval:
				if !t.Bounded() {
					return true
				}
			}
		}
	}
	return false
}

// IsAmbiguous reports whether sel contains a wildcard or unbounded interval.
func IsAmbiguous(sel Like) (bool, error) {
	p, err := ToParsed(sel)
	if err != nil {
		return false, err
	}
	return Ambiguous(p), nil
}

// IsEmpty reports whether every branch of sel has zero tokens.
func IsEmpty(sel Like) (bool, error) {
	p, err := ToParsed(sel)
	if err != nil {
		return false, err
	}
	return p.Empty(), nil
}

// IsExpandable reports whether sel denotes more than one value: some level
// admits several distinct values, or more than one distinct identifier
// results. A selector naming exactly one identifier is not expandable.
func IsExpandable(sel Like) (bool, error) {
	p, err := ToParsed(sel)
	if err != nil {
		return false, err
	}
	if Ambiguous(p) {
		return false, NewAmbiguousError("expandability check", describe(sel))
	}

	for _, branch := range p {
		for _, tok := range branch {
			if distinct(levelValues(tok)) > 1 {
				return true, nil
			}
		}
	}

	seen := make(map[string]struct{})
	for _, id := range identifiers(p) {
		seen[id.Key()] = struct{}{}
		if len(seen) > 1 {
			return true, nil
		}
	}
	return false, nil
}

func distinct(atoms []ir.Atom) int {
	seen := make(map[ir.Atom]struct{}, len(atoms))
	for _, a := range atoms {
		seen[a] = struct{}{}
	}
	return len(seen)
}

// IsSelector reports whether sel is a well-formed selector: text that
// parses, or a branch list built only from valid tokens.
func IsSelector(sel Like) bool {
	p, err := ToParsed(sel)
	if err != nil {
		return false
	}
	for _, branch := range p {
		for _, tok := range branch {
			if !validToken(tok) {
				return false
			}
		}
	}
	return true
}

func validToken(tok ir.Token) bool {
	switch t := tok.(type) {
	case ir.Wildcard, ir.Str, ir.Int:
		return true
	case ir.StrSet:
		return len(t) > 0
	case ir.IntSet:
		return len(t) > 0
	case ir.Interval:
		return true
	}
	return false
}

// IsIdentifier reports whether sel names exactly one concrete key: a single
// non-empty branch of string and integer literals, with no combinators.
func IsIdentifier(sel Like) bool {
	if text, ok := sel.(Text); ok {
		lexemes, err := Tokenize(string(text))
		if err != nil || len(lexemes) == 0 {
			return false
		}
		for _, l := range lexemes {
			if l.Kind != KindString && l.Kind != KindInteger {
				return false
			}
		}
		return true
	}

	p, err := ToParsed(sel)
	if err != nil || len(p) != 1 || len(p[0]) == 0 {
		return false
	}
	for _, tok := range p[0] {
		switch tok.(type) {
		case ir.Str, ir.Int:
		default:
			return false
		}
	}
	return true
}

// MaxLevels returns the longest branch length of sel (0 when empty).
// Results for selector text are memoized with the parse.
func MaxLevels(sel Like) (int, error) {
	switch s := sel.(type) {
	case Text:
		e, err := lookup(string(s))
		if err != nil {
			return 0, err
		}
		return e.maxLevels, nil
	case *Selector:
		if s != nil {
			return s.maxLevels, nil
		}
	}
	p, err := ToParsed(sel)
	if err != nil {
		return 0, err
	}
	return p.MaxLevels(), nil
}

// AreDisjoint reports whether no identifier is denoted by more than one of
// sels. A single selector is trivially disjoint; the empty selector is
// disjoint from everything. All selectors must be unambiguous.
func AreDisjoint(sels ...Like) (bool, error) {
	parsed := make([]ir.Parsed, len(sels))
	for i, sel := range sels {
		p, err := ToParsed(sel)
		if err != nil {
			return false, err
		}
		if Ambiguous(p) {
			return false, NewAmbiguousError("disjointness check", describe(sel))
		}
		parsed[i] = p
	}
	if len(sels) <= 1 {
		return true, nil
	}

	seen := make(map[string]struct{})
	for _, p := range parsed {
		if p.Empty() {
			continue
		}
		own := make(map[string]struct{})
		for _, id := range identifiers(p) {
			k := id.Key()
			if _, dup := seen[k]; dup {
				return false, nil
			}
			own[k] = struct{}{}
		}
		for k := range own {
			seen[k] = struct{}{}
		}
	}
	return true, nil
}

// IsIn reports whether every identifier of s is also an identifier of t.
// The empty selector is in every selector.
func IsIn(s, t Like) (bool, error) {
	ps, err := ToParsed(s)
	if err != nil {
		return false, err
	}
	if ps.Empty() {
		return true, nil
	}
	pt, err := ToParsed(t)
	if err != nil {
		return false, err
	}
	if Ambiguous(ps) {
		return false, NewAmbiguousError("containment check", describe(s))
	}
	if Ambiguous(pt) {
		return false, NewAmbiguousError("containment check", describe(t))
	}

	within := make(map[string]struct{})
	for _, id := range identifiers(pt) {
		within[id.Key()] = struct{}{}
	}
	for _, id := range identifiers(ps) {
		if _, ok := within[id.Key()]; !ok {
			return false, nil
		}
	}
	return true, nil
}
