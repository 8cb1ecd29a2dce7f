// Package sqlindex persists selector keys in SQLite and answers selector
// queries with SQL.
//
// A Table stores rows of a fixed number of key levels plus an integer
// value in insertion order. Level columns are declared without a type, so
// integer and string atoms keep their storage class and Int(1) never equals
// Str("1"). Selectors are compiled to parameterized WHERE clauses with the
// same prefix-matching rules as index.Select; every query is ordered by row
// id, so results come back in insertion order.
package sqlindex
