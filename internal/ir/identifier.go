package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Atom is a sealed interface for one concrete level value of an identifier.
// Only Str and Int implement it. Atoms are comparable with ==.
type Atom interface {
	atom()
}

func (Str) atom() {}
func (Int) atom() {}

// Blank is the padding atom used to right-pad short identifiers.
const Blank = Str("")

// Identifier is one fully expanded row key.
type Identifier []Atom

// ID builds an identifier from Go values. Strings become Str, integers Int.
// Panics on any other type; intended for literals in code and tests.
func ID(vals ...any) Identifier {
	id := make(Identifier, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case string:
			id[i] = Str(x)
		case int:
			id[i] = Int(x)
		case int64:
			id[i] = Int(x)
		case Str:
			id[i] = x
		case Int:
			id[i] = x
		default:
			panic(fmt.Sprintf("ir.ID: unsupported atom type %T", v))
		}
	}
	return id
}

// Equal reports whether two identifiers have the same atoms in order.
func (id Identifier) Equal(other Identifier) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns a string that uniquely encodes the identifier, for use as a
// map key. Str("1") and Int(1) encode differently.
func (id Identifier) Key() string {
	var b strings.Builder
	for _, a := range id {
		switch v := a.(type) {
		case Int:
			b.WriteByte('i')
			b.WriteString(strconv.FormatInt(int64(v), 10))
			b.WriteByte(';')
		case Str:
			b.WriteByte('s')
			b.WriteString(strconv.Itoa(len(v)))
			b.WriteByte(':')
			b.WriteString(string(v))
		}
	}
	return b.String()
}

// Pad returns a copy of id right-padded with Blank up to n atoms.
// Identifiers already n atoms or longer are copied unchanged.
func (id Identifier) Pad(n int) Identifier {
	size := len(id)
	if n > size {
		size = n
	}
	out := make(Identifier, len(id), size)
	copy(out, id)
	for len(out) < n {
		out = append(out, Blank)
	}
	return out
}

// Trim returns id without trailing Blank atoms.
func (id Identifier) Trim() Identifier {
	end := len(id)
	for end > 0 && id[end-1] == Blank {
		end--
	}
	return id[:end]
}

// Concat returns a new identifier made of id followed by other.
func (id Identifier) Concat(other Identifier) Identifier {
	out := make(Identifier, 0, len(id)+len(other))
	out = append(out, id...)
	return append(out, other...)
}

// Branch converts the identifier into a branch of literal tokens.
func (id Identifier) Branch() Branch {
	b := make(Branch, len(id))
	for i, a := range id {
		b[i] = a.(Token)
	}
	return b
}

// String renders the identifier in selector syntax, e.g. "/foo/0". Blank
// atoms render as a bare "/", so padded identifiers are for display only.
func (id Identifier) String() string {
	var b strings.Builder
	for _, a := range id {
		b.WriteString(FormatToken(a.(Token)))
	}
	return b.String()
}

// CompareAtoms orders atoms: integers before strings, then by value.
func CompareAtoms(a, b Atom) int {
	switch x := a.(type) {
	case Int:
		y, ok := b.(Int)
		if !ok {
			return -1
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case Str:
		y, ok := b.(Str)
		if !ok {
			return 1
		}
		return strings.Compare(string(x), string(y))
	}
	return 0
}

// Compare orders identifiers lexicographically by atom, shorter first on ties.
func Compare(a, b Identifier) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := CompareAtoms(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
