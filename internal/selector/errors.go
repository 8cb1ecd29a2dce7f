package selector

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a failure to tokenize, parse or evaluate a selector.
//
// Selector errors are local and synchronous: they signal logic or input
// mistakes, never transient conditions, so callers should not retry.
// "Selects nothing" is a valid zero-count result and never an Error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Selector is the selector text involved, when known.
	Selector string

	// Pos is the byte offset of the offending input (-1 if not applicable).
	Pos int

	// Token is the offending character or token text.
	Token string

	// Remaining holds the unconsumed token stream for parse errors.
	Remaining []string
}

// ErrorCode categorizes selector errors.
type ErrorCode string

const (
	// ErrCodeTokenize indicates an unrecognized character sequence.
	ErrCodeTokenize ErrorCode = "TOKENIZE_ERROR"

	// ErrCodeParse indicates a grammar rule mismatch.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeAmbiguous indicates an operation that requires expansion was
	// given a selector containing a wildcard or unbounded interval.
	ErrCodeAmbiguous ErrorCode = "AMBIGUOUS_SELECTOR"

	// ErrCodeArityMismatch indicates identifiers or branch lists of
	// incompatible lengths (collapse, zip concatenation).
	ErrCodeArityMismatch ErrorCode = "ARITY_MISMATCH"

	// ErrCodeLevelMismatch indicates a selector deeper than the key it is
	// matched against.
	ErrCodeLevelMismatch ErrorCode = "LEVEL_MISMATCH"

	// ErrCodeLengthMismatch indicates a position or value array whose
	// length does not match the expanded identifier count.
	ErrCodeLengthMismatch ErrorCode = "LENGTH_MISMATCH"

	// ErrCodeUnrenderable indicates a string atom that has no selector text
	// form, such as the blank padding atom.
	ErrCodeUnrenderable ErrorCode = "UNRENDERABLE_ATOM"
)

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Selector != "" {
		fmt.Fprintf(&b, " (selector=%q", e.Selector)
		if e.Pos >= 0 {
			fmt.Fprintf(&b, ", pos=%d", e.Pos)
		}
		b.WriteByte(')')
	}
	if len(e.Remaining) > 0 {
		fmt.Fprintf(&b, " remaining=%v", e.Remaining)
	}
	return b.String()
}

func hasCode(err error, codes ...ErrorCode) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.Code == c {
			return true
		}
	}
	return false
}

// IsTokenizeError returns true if err is a tokenize error.
// Uses errors.As to handle wrapped errors.
func IsTokenizeError(err error) bool { return hasCode(err, ErrCodeTokenize) }

// IsParseError returns true if err is a parse error.
func IsParseError(err error) bool { return hasCode(err, ErrCodeParse) }

// IsAmbiguousError returns true if err reports an ambiguous selector.
func IsAmbiguousError(err error) bool { return hasCode(err, ErrCodeAmbiguous) }

// IsArityError returns true for arity and level mismatches.
func IsArityError(err error) bool {
	return hasCode(err, ErrCodeArityMismatch, ErrCodeLevelMismatch)
}

// IsLevelMismatchError returns true if err is a level mismatch.
func IsLevelMismatchError(err error) bool { return hasCode(err, ErrCodeLevelMismatch) }

// IsLengthError returns true if err is a length mismatch.
func IsLengthError(err error) bool { return hasCode(err, ErrCodeLengthMismatch) }

// IsUnrenderableError returns true if err reports an atom with no text form.
func IsUnrenderableError(err error) bool { return hasCode(err, ErrCodeUnrenderable) }

// NewTokenizeError creates an Error for an unrecognized character.
func NewTokenizeError(sel string, pos int, ch string) *Error {
	return &Error{
		Code:     ErrCodeTokenize,
		Message:  fmt.Sprintf("illegal character %q", ch),
		Selector: sel,
		Pos:      pos,
		Token:    ch,
	}
}

// NewAmbiguousError creates an Error for an operation needing expansion.
func NewAmbiguousError(op, sel string) *Error {
	return &Error{
		Code:     ErrCodeAmbiguous,
		Message:  fmt.Sprintf("%s requires an unambiguous selector", op),
		Selector: sel,
		Pos:      -1,
	}
}

// NewArityError creates an Error for mismatched lengths between operands.
func NewArityError(msg string) *Error {
	return &Error{Code: ErrCodeArityMismatch, Message: msg, Pos: -1}
}

// NewLevelMismatchError creates an Error for a selector deeper than a key.
func NewLevelMismatchError(sel string, selLevels, keyLevels int) *Error {
	return &Error{
		Code:     ErrCodeLevelMismatch,
		Message:  fmt.Sprintf("selector has %d levels but key has only %d", selLevels, keyLevels),
		Selector: sel,
		Pos:      -1,
	}
}

// NewLengthError creates an Error for an array of the wrong length.
func NewLengthError(what string, got, want int) *Error {
	return &Error{
		Code:    ErrCodeLengthMismatch,
		Message: fmt.Sprintf("%s length %d does not match expected %d", what, got, want),
		Pos:     -1,
	}
}

// NewUnrenderableError creates an Error for a string atom that cannot be
// written as selector text.
func NewUnrenderableError(atom string) *Error {
	return &Error{
		Code:    ErrCodeUnrenderable,
		Message: fmt.Sprintf("string atom %q cannot be written as a selector level", atom),
		Pos:     -1,
		Token:   atom,
	}
}
