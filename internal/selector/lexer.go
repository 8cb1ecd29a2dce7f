package selector

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/plsel/internal/ir"
)

// Kind identifies the lexical class of a Lexeme.
type Kind int

const (
	KindPlus       Kind = iota // +
	KindDotPlus                // .+
	KindComma                  // ,
	KindLParen                 // (
	KindRParen                 // )
	KindAsterisk               // /*
	KindInteger                // /12
	KindIntegerSet             // [1,2,3]
	KindInterval               // [0:3]
	KindString                 // /foo
	KindStringSet              // [a,b]
)

var kindNames = map[Kind]string{
	KindPlus:       "PLUS",
	KindDotPlus:    "DOTPLUS",
	KindComma:      "COMMA",
	KindLParen:     "LPAREN",
	KindRParen:     "RPAREN",
	KindAsterisk:   "ASTERISK",
	KindInteger:    "INTEGER",
	KindIntegerSet: "INTEGER_SET",
	KindInterval:   "INTERVAL",
	KindString:     "STRING",
	KindStringSet:  "STRING_SET",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLevel reports whether the kind carries a per-level constraint.
func (k Kind) IsLevel() bool {
	return k >= KindAsterisk
}

// Lexeme is one token of selector text together with its semantic payload.
type Lexeme struct {
	Kind  Kind
	Text  string   // Source text of the token
	Pos   int      // Byte offset of the token in the selector
	Value ir.Token // Level constraint; nil for combinators and parentheses
}

// special lists the characters that can never appear inside a string level.
const special = "/*[]():,.+"

func isStringRune(r rune) bool {
	return !strings.ContainsRune(special, r) && !unicode.IsSpace(r)
}

func isStringStart(r rune) bool {
	return isStringRune(r) && !unicode.IsDigit(r)
}

// Renderable reports whether s can be written as a string level and read
// back unchanged: non-empty, NFC, not starting with a digit, and free of
// whitespace and special characters. The blank padding atom is not
// renderable.
func Renderable(s string) bool {
	if s == "" || !norm.NFC.IsNormalString(s) {
		return false
	}
	for i, r := range s {
		if !isStringRune(r) || (i == 0 && !isStringStart(r)) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Tokenize converts selector text into lexemes.
//
// Whitespace between tokens is ignored; an empty or all-whitespace selector
// yields no lexemes and no error. Any unrecognized character aborts
// tokenization with a TOKENIZE_ERROR; no partial stream is returned.
func Tokenize(s string) ([]Lexeme, error) {
	lx := &lexer{src: s}
	var out []Lexeme
	for {
		lex, ok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, lex)
	}
}

// Tokens returns only the level constraints of Tokenize, dropping
// combinators and parentheses.
func Tokens(s string) ([]ir.Token, error) {
	lexemes, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	var toks []ir.Token
	for _, l := range lexemes {
		if l.Value != nil {
			toks = append(toks, l.Value)
		}
	}
	return toks, nil
}

type lexer struct {
	src string
	pos int
}

func (lx *lexer) errorAt(pos int) error {
	r, _ := utf8.DecodeRuneInString(lx.src[pos:])
	return NewTokenizeError(lx.src, pos, string(r))
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		lx.pos += size
	}
}

// next scans one lexeme. ok is false at end of input.
func (lx *lexer) next() (Lexeme, bool, error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return Lexeme{}, false, nil
	}

	start := lx.pos
	switch c := lx.src[start]; c {
	case '+':
		lx.pos++
		return Lexeme{Kind: KindPlus, Text: "+", Pos: start}, true, nil
	case ',':
		lx.pos++
		return Lexeme{Kind: KindComma, Text: ",", Pos: start}, true, nil
	case '(':
		lx.pos++
		return Lexeme{Kind: KindLParen, Text: "(", Pos: start}, true, nil
	case ')':
		lx.pos++
		return Lexeme{Kind: KindRParen, Text: ")", Pos: start}, true, nil
	case '.':
		if start+1 < len(lx.src) && lx.src[start+1] == '+' {
			lx.pos += 2
			return Lexeme{Kind: KindDotPlus, Text: ".+", Pos: start}, true, nil
		}
		return Lexeme{}, false, lx.errorAt(start)
	case '/':
		if start+1 >= len(lx.src) {
			return Lexeme{}, false, lx.errorAt(start)
		}
		r, _ := utf8.DecodeRuneInString(lx.src[start+1:])
		if isStringStart(r) {
			return lx.scanString(start)
		}
		lx.pos++
		lex, ok, err := lx.scanLevel(start)
		if err != nil || ok {
			return lex, ok, err
		}
		return Lexeme{}, false, lx.errorAt(start + 1)
	default:
		lex, ok, err := lx.scanLevel(start)
		if err != nil || ok {
			return lex, ok, err
		}
		return Lexeme{}, false, lx.errorAt(start)
	}
}

// scanLevel scans an asterisk, integer or bracket token at lx.pos. The token
// text begins at start, which precedes lx.pos when a '/' was consumed.
// ok is false when no level token begins at lx.pos.
func (lx *lexer) scanLevel(start int) (Lexeme, bool, error) {
	if lx.pos >= len(lx.src) {
		return Lexeme{}, false, nil
	}

	switch c := lx.src[lx.pos]; {
	case c == '*':
		lx.pos++
		return Lexeme{Kind: KindAsterisk, Text: lx.src[start:lx.pos], Pos: start, Value: ir.Wildcard{}}, true, nil
	case isDigit(c):
		begin := lx.pos
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
		n, err := strconv.ParseInt(lx.src[begin:lx.pos], 10, 64)
		if err != nil {
			return Lexeme{}, false, NewTokenizeError(lx.src, begin, lx.src[begin:lx.pos])
		}
		return Lexeme{Kind: KindInteger, Text: lx.src[start:lx.pos], Pos: start, Value: ir.Int(n)}, true, nil
	case c == '[':
		return lx.scanBracket(start)
	}
	return Lexeme{}, false, nil
}

// scanString scans "/<name>" starting at the slash.
func (lx *lexer) scanString(start int) (Lexeme, bool, error) {
	lx.pos = start + 1
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isStringRune(r) {
			break
		}
		lx.pos += size
	}
	name := norm.NFC.String(lx.src[start+1 : lx.pos])
	return Lexeme{Kind: KindString, Text: lx.src[start:lx.pos], Pos: start, Value: ir.Str(name)}, true, nil
}

// scanBracket scans an integer set, string set or interval beginning with
// '[' at lx.pos.
func (lx *lexer) scanBracket(start int) (Lexeme, bool, error) {
	open := lx.pos
	end := strings.IndexByte(lx.src[open+1:], ']')
	if end < 0 {
		return Lexeme{}, false, lx.errorAt(open)
	}
	closeAt := open + 1 + end
	body := lx.src[open+1 : closeAt]
	lx.pos = closeAt + 1
	text := lx.src[start:lx.pos]

	if colon := strings.IndexByte(body, ':'); colon >= 0 {
		iv, err := lx.interval(body, open+1, colon)
		if err != nil {
			return Lexeme{}, false, err
		}
		return Lexeme{Kind: KindInterval, Text: text, Pos: start, Value: iv}, true, nil
	}

	elems, offsets, err := lx.splitSet(body, open+1)
	if err != nil {
		return Lexeme{}, false, err
	}

	if isDigit(elems[0][0]) {
		set := make(ir.IntSet, len(elems))
		for i, e := range elems {
			for j := 0; j < len(e); j++ {
				if !isDigit(e[j]) {
					return Lexeme{}, false, lx.errorAt(offsets[i] + j)
				}
			}
			n, err := strconv.ParseInt(e, 10, 64)
			if err != nil {
				return Lexeme{}, false, NewTokenizeError(lx.src, offsets[i], e)
			}
			set[i] = n
		}
		return Lexeme{Kind: KindIntegerSet, Text: text, Pos: start, Value: set}, true, nil
	}

	set := make(ir.StrSet, len(elems))
	for i, e := range elems {
		for j, r := range e {
			if !isStringRune(r) || (j == 0 && !isStringStart(r)) {
				return Lexeme{}, false, lx.errorAt(offsets[i] + j)
			}
		}
		set[i] = norm.NFC.String(e)
	}
	return Lexeme{Kind: KindStringSet, Text: text, Pos: start, Value: set}, true, nil
}

// splitSet splits a set body on commas. A single trailing comma is allowed;
// empty members are not.
func (lx *lexer) splitSet(body string, offset int) ([]string, []int, error) {
	if body == "" {
		return nil, nil, lx.errorAt(offset)
	}
	parts := strings.Split(body, ",")
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	offsets := make([]int, len(parts))
	at := offset
	for i, p := range parts {
		if p == "" {
			return nil, nil, lx.errorAt(at)
		}
		offsets[i] = at
		at += len(p) + 1
	}
	return parts, offsets, nil
}

// interval parses "[start?:stop?]" bodies; either bound may be empty.
func (lx *lexer) interval(body string, offset, colon int) (ir.Interval, error) {
	var iv ir.Interval
	bounds := []struct {
		text string
		at   int
		dst  **int64
	}{
		{body[:colon], offset, &iv.Start},
		{body[colon+1:], offset + colon + 1, &iv.Stop},
	}
	for _, b := range bounds {
		if b.text == "" {
			continue
		}
		for j := 0; j < len(b.text); j++ {
			if !isDigit(b.text[j]) {
				return ir.Interval{}, lx.errorAt(b.at + j)
			}
		}
		n, err := strconv.ParseInt(b.text, 10, 64)
		if err != nil {
			return ir.Interval{}, NewTokenizeError(lx.src, b.at, b.text)
		}
		*b.dst = &n
	}
	return iv, nil
}
