// Package testutil provides deterministic fixtures for selector tests.
package testutil

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

var names = []string{"a", "b", "c", "gpot", "spike"}

// SelectorGen produces pseudo-random selector strings from a fixed seed.
// The same seed always yields the same sequence, so property tests are
// reproducible and failures can be replayed.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SelectorGen struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelectorGen creates a generator seeded with seed.
func NewSelectorGen(seed uint64) *SelectorGen {
	return &SelectorGen{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Unambiguous returns a selector of one to three comma-separated branches,
// all with the same number of levels (one to three). Every level is a
// literal, a set or a bounded interval, so the selector can be expanded.
func (g *SelectorGen) Unambiguous() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selector(false)
}

// Ambiguous returns a selector like Unambiguous with one level replaced by
// a wildcard or an interval without an upper bound.
func (g *SelectorGen) Ambiguous() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selector(true)
}

func (g *SelectorGen) selector(ambiguous bool) string {
	levels := 1 + g.rng.IntN(3)
	branches := make([]string, 1+g.rng.IntN(3))
	for i := range branches {
		branches[i] = g.branch(levels)
	}
	if ambiguous {
		i := g.rng.IntN(len(branches))
		branches[i] = g.ambiguousBranch(levels)
	}
	return strings.Join(branches, ",")
}

func (g *SelectorGen) branch(levels int) string {
	var b strings.Builder
	for i := 0; i < levels; i++ {
		b.WriteString(g.level())
	}
	return b.String()
}

func (g *SelectorGen) ambiguousBranch(levels int) string {
	var b strings.Builder
	at := g.rng.IntN(levels)
	for i := 0; i < levels; i++ {
		if i != at {
			b.WriteString(g.level())
			continue
		}
		if g.rng.IntN(2) == 0 {
			b.WriteString("/*")
		} else {
			fmt.Fprintf(&b, "[%d:]", g.rng.IntN(4))
		}
	}
	return b.String()
}

func (g *SelectorGen) level() string {
	switch g.rng.IntN(5) {
	case 0:
		return "/" + names[g.rng.IntN(len(names))]
	case 1:
		return fmt.Sprintf("/%d", g.rng.IntN(5))
	case 2:
		perm := g.rng.Perm(len(names))[:1+g.rng.IntN(3)]
		set := make([]string, len(perm))
		for i, p := range perm {
			set[i] = names[p]
		}
		return "[" + strings.Join(set, ",") + "]"
	case 3:
		perm := g.rng.Perm(6)[:1+g.rng.IntN(3)]
		set := make([]string, len(perm))
		for i, p := range perm {
			set[i] = fmt.Sprint(p)
		}
		return "[" + strings.Join(set, ",") + "]"
	default:
		lo := g.rng.IntN(4)
		return fmt.Sprintf("[%d:%d]", lo, lo+1+g.rng.IntN(3))
	}
}
