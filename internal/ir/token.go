package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is a sealed interface representing one constraint at one hierarchy
// level. Only Wildcard, Str, Int, StrSet, IntSet and Interval implement it.
type Token interface {
	token() // Sealed - only these types implement it
}

// Wildcard matches any value at its level.
type Wildcard struct{}

func (Wildcard) token() {}

// Str matches a level value exactly equal to the string.
type Str string

func (Str) token() {}

// Int matches a level value exactly equal to the integer.
type Int int64

func (Int) token() {}

// StrSet matches a level value equal to any of the listed strings.
// Members keep the order in which they were written.
type StrSet []string

func (StrSet) token() {}

// IntSet matches a level value equal to any of the listed integers.
// Members keep the order in which they were written.
type IntSet []int64

func (IntSet) token() {}

// Interval matches integer level values in the half-open range [Start, Stop).
//
// A nil Start is unbounded below and expands from 0. A nil Stop is unbounded
// above; such an interval can be matched but never expanded.
type Interval struct {
	Start *int64
	Stop  *int64
}

func (Interval) token() {}

// NewInterval creates a bounded interval [start, stop).
func NewInterval(start, stop int64) Interval {
	return Interval{Start: &start, Stop: &stop}
}

// Lower returns the effective lower bound (0 when Start is nil).
func (iv Interval) Lower() int64 {
	if iv.Start == nil {
		return 0
	}
	return *iv.Start
}

// Bounded reports whether the interval has an upper bound.
func (iv Interval) Bounded() bool {
	return iv.Stop != nil
}

// Contains reports whether v lies inside the interval. Nil bounds are
// unbounded on their side (a nil Start does not imply 0 here).
func (iv Interval) Contains(v int64) bool {
	if iv.Start != nil && v < *iv.Start {
		return false
	}
	if iv.Stop != nil && v >= *iv.Stop {
		return false
	}
	return true
}

// Values enumerates the interval. Returns an error for an unbounded interval.
func (iv Interval) Values() ([]int64, error) {
	if iv.Stop == nil {
		return nil, fmt.Errorf("cannot enumerate interval %s: no upper bound", iv)
	}
	lo, hi := iv.Lower(), *iv.Stop
	if hi <= lo {
		return []int64{}, nil
	}
	vals := make([]int64, 0, hi-lo)
	for v := lo; v < hi; v++ {
		vals = append(vals, v)
	}
	return vals, nil
}

// String renders the interval in selector syntax, e.g. "[0:3]" or "[5:]".
func (iv Interval) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if iv.Start != nil {
		b.WriteString(strconv.FormatInt(*iv.Start, 10))
	}
	b.WriteByte(':')
	if iv.Stop != nil {
		b.WriteString(strconv.FormatInt(*iv.Stop, 10))
	}
	b.WriteByte(']')
	return b.String()
}

// Branch is one alternative: an ordered token sequence, one token per level.
type Branch []Token

// Parsed is the parsed form of a selector: a list of alternative branches.
// Branches may have differing lengths.
type Parsed []Branch

// Empty reports whether every branch has zero tokens.
// A nil or zero-length Parsed is empty as well.
func (p Parsed) Empty() bool {
	for _, b := range p {
		if len(b) > 0 {
			return false
		}
	}
	return true
}

// MaxLevels returns the longest branch length (0 for the empty selector).
func (p Parsed) MaxLevels() int {
	n := 0
	for _, b := range p {
		if len(b) > n {
			n = len(b)
		}
	}
	return n
}

// Clone returns a deep copy of the parsed selector.
func (p Parsed) Clone() Parsed {
	if p == nil {
		return nil
	}
	out := make(Parsed, len(p))
	for i, b := range p {
		nb := make(Branch, len(b))
		for j, tok := range b {
			nb[j] = CloneToken(tok)
		}
		out[i] = nb
	}
	return out
}

// CloneToken returns a copy of tok that shares no memory with it.
func CloneToken(tok Token) Token {
	switch t := tok.(type) {
	case StrSet:
		return append(StrSet(nil), t...)
	case IntSet:
		return append(IntSet(nil), t...)
	case Interval:
		var out Interval
		if t.Start != nil {
			v := *t.Start
			out.Start = &v
		}
		if t.Stop != nil {
			v := *t.Stop
			out.Stop = &v
		}
		return out
	default:
		return tok
	}
}

// FormatToken renders a single token in selector syntax.
func FormatToken(tok Token) string {
	switch t := tok.(type) {
	case Wildcard:
		return "/*"
	case Str:
		return "/" + string(t)
	case Int:
		return "/" + strconv.FormatInt(int64(t), 10)
	case StrSet:
		return "[" + strings.Join(t, ",") + "]"
	case IntSet:
		parts := make([]string, len(t))
		for i, v := range t {
			parts[i] = strconv.FormatInt(v, 10)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case Interval:
		return t.String()
	default:
		return fmt.Sprintf("<%T>", tok)
	}
}

// String renders the parsed selector in selector syntax. Str tokens are
// written verbatim, so a blank or digit-leading string renders as text that
// does not parse back.
func (p Parsed) String() string {
	branches := make([]string, 0, len(p))
	for _, b := range p {
		var sb strings.Builder
		for _, tok := range b {
			sb.WriteString(FormatToken(tok))
		}
		branches = append(branches, sb.String())
	}
	return strings.Join(branches, ",")
}
