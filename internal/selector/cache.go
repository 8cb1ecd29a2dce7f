package selector

import (
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/roach88/plsel/internal/ir"
)

// cacheEntry is the memoized parse of one selector string.
type cacheEntry struct {
	parsed    ir.Parsed
	maxLevels int
}

// parseCache is process-wide and append-only: selector strings are
// immutable, so entries never go stale and are never evicted.
// Failed parses are not cached.
var parseCache = xsync.NewMapOf[string, *cacheEntry]()

// parseCached returns the shared parse of s. Callers must not modify it.
func parseCached(s string) (ir.Parsed, error) {
	e, err := lookup(s)
	if err != nil {
		return nil, err
	}
	return e.parsed, nil
}

func lookup(s string) (*cacheEntry, error) {
	if e, ok := parseCache.Load(s); ok {
		return e, nil
	}

	parsed, err := parseUncached(s)
	if err != nil {
		return nil, err
	}
	slog.Debug("selector parsed",
		"selector", s,
		"branches", len(parsed),
	)

	e, _ := parseCache.LoadOrStore(s, &cacheEntry{
		parsed:    parsed,
		maxLevels: parsed.MaxLevels(),
	})
	return e, nil
}

// CacheSize returns the number of memoized selector strings.
func CacheSize() int {
	return parseCache.Size()
}
