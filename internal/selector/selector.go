package selector

import (
	"github.com/roach88/plsel/internal/ir"
)

// Selector is a validated, unambiguous selector with its expansion
// precomputed. Instances are immutable; combinators return new values.
type Selector struct {
	str       string
	parsed    ir.Parsed
	expanded  []ir.Identifier
	maxLevels int
}

// New parses and expands s. Fails with AMBIGUOUS_SELECTOR if s contains a
// wildcard or an unbounded interval.
func New(s string) (*Selector, error) {
	p, err := parseCached(s)
	if err != nil {
		return nil, err
	}
	if Ambiguous(p) {
		return nil, NewAmbiguousError("selector construction", s)
	}
	return newFromParsed(s, p), nil
}

// MustNew is like New but panics on error. Intended for selector literals.
func MustNew(s string) *Selector {
	sel, err := New(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// FromLike validates any selector form. Non-text forms are rendered back to
// selector text for String.
func FromLike(sel Like) (*Selector, error) {
	switch s := sel.(type) {
	case *Selector:
		return s, nil
	case Text:
		return New(string(s))
	}
	p, err := ToParsed(sel)
	if err != nil {
		return nil, err
	}
	if Ambiguous(p) {
		return nil, NewAmbiguousError("selector construction", describe(sel))
	}
	p = p.Clone()
	return newFromParsed(p.String(), p), nil
}

func newFromParsed(s string, p ir.Parsed) *Selector {
	return &Selector{
		str:       s,
		parsed:    p,
		expanded:  identifiers(p),
		maxLevels: p.MaxLevels(),
	}
}

// String returns the selector text. For selectors built by FromLike from
// identifiers holding blank or digit-leading strings the text is for display
// and does not parse back.
func (s *Selector) String() string { return s.str }

// Expanded returns the identifiers in expansion order (none for the empty
// selector). The slice is shared and must not be modified.
func (s *Selector) Expanded() []ir.Identifier { return s.expanded }

// MaxLevels returns the longest branch length.
func (s *Selector) MaxLevels() int { return s.maxLevels }

// Count returns the number of identifiers.
func (s *Selector) Count() int { return len(s.expanded) }

// Empty reports whether s is the empty selector.
func (s *Selector) Empty() bool { return s.parsed.Empty() }

// Add returns the Cartesian product s+other: every branch of s followed by
// every branch of other.
func (s *Selector) Add(other *Selector) *Selector {
	switch {
	case s.Empty():
		return other
	case other.Empty():
		return s
	}
	return newFromParsed("("+s.str+")+("+other.str+")", cartesian(s.parsed, other.parsed))
}

// Concat returns the zip concatenation s.+other: identifier i of s followed
// by identifier i of other. Both must have the same Count.
func (s *Selector) Concat(other *Selector) (*Selector, error) {
	if s.Empty() && other.Empty() {
		return s, nil
	}
	p, err := zipBranches(s.parsed, other.parsed)
	if err != nil {
		return nil, err
	}
	return newFromParsed("("+s.str+").+("+other.str+")", p), nil
}

// Union returns the alternation s,other.
func (s *Selector) Union(other *Selector) *Selector {
	switch {
	case s.Empty():
		return other
	case other.Empty():
		return s
	}
	p := make(ir.Parsed, 0, len(s.parsed)+len(other.parsed))
	p = append(p, s.parsed...)
	p = append(p, other.parsed...)
	return newFromParsed("("+s.str+"),("+other.str+")", p)
}
