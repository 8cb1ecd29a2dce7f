// Package index builds ordered composite-key indices from selectors and
// filters keyed containers by selector.
//
// An Index holds one row per expanded identifier, in expansion order, with
// every key padded to the same number of levels using ir.Blank. Rows carry
// an integer value, which callers use for positions or data offsets.
//
// Selection works on anything implementing Container: a row is kept when
// its key, restricted to a range of levels, matches at least one branch of
// the selector. Matching is prefix-based: a branch of k tokens constrains
// only the first k levels of the range. Ambiguous selectors are fine for
// matching; only building an index requires expansion.
package index
