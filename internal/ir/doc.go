// Package ir provides the token and identifier types for path-like selectors.
//
// This package contains type definitions and their wire encoding only. All
// other internal packages import ir; ir imports nothing internal. This keeps
// the selector representation the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Token and Atom are sealed interfaces; exhaustive type switches are safe
//   - Str and Int are both Tokens (literal constraints) and Atoms (key values)
//   - NO float types anywhere - integer levels are int64
//   - Interval is half-open; a nil Stop means unbounded above
//   - The blank atom (Str("")) pads short identifiers to a uniform width
package ir
