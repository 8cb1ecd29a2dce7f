package selector

import (
	"fmt"

	"github.com/roach88/plsel/internal/ir"
)

// Grammar, loosest binding first:
//
//	alternation := product { ',' product }
//	product     := zip { '+' zip }
//	zip         := sequence { '.+' sequence }
//	sequence    := primary { primary }
//	primary     := level | '(' alternation ')'
//
// Within a sequence a level is appended to every branch built so far and a
// parenthesized group is combined with them as a Cartesian product.

// Parse converts selector text into its branch list.
//
// An empty or all-whitespace selector parses to Parsed{{}}: one branch with
// no tokens, which the rest of the package treats as the empty selector.
// The result is a private copy and may be modified by the caller.
func Parse(s string) (ir.Parsed, error) {
	p, err := parseCached(s)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// parseUncached runs the tokenizer and parser with no memoization.
func parseUncached(s string) (ir.Parsed, error) {
	lexemes, err := Tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(lexemes) == 0 {
		return ir.Parsed{{}}, nil
	}

	p := &parser{src: s, lex: lexemes}
	out, err := p.alternation()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.unexpected()
	}
	return out, nil
}

type parser struct {
	src string
	lex []Lexeme
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.lex) }

func (p *parser) peek() (Lexeme, bool) {
	if p.done() {
		return Lexeme{}, false
	}
	return p.lex[p.pos], true
}

func (p *parser) accept(k Kind) bool {
	if l, ok := p.peek(); ok && l.Kind == k {
		p.pos++
		return true
	}
	return false
}

// unexpected builds a PARSE_ERROR at the current position carrying the
// unconsumed token stream.
func (p *parser) unexpected() error {
	if p.done() {
		return &Error{
			Code:     ErrCodeParse,
			Message:  "unexpected end of selector",
			Selector: p.src,
			Pos:      len(p.src),
		}
	}
	l := p.lex[p.pos]
	remaining := make([]string, 0, len(p.lex)-p.pos)
	for _, r := range p.lex[p.pos:] {
		remaining = append(remaining, r.Text)
	}
	return &Error{
		Code:      ErrCodeParse,
		Message:   fmt.Sprintf("unexpected %s %q", l.Kind, l.Text),
		Selector:  p.src,
		Pos:       l.Pos,
		Token:     l.Text,
		Remaining: remaining,
	}
}

func (p *parser) alternation() (ir.Parsed, error) {
	out, err := p.product()
	if err != nil {
		return nil, err
	}
	for p.accept(KindComma) {
		rhs, err := p.product()
		if err != nil {
			return nil, err
		}
		out = append(out, rhs...)
	}
	return out, nil
}

func (p *parser) product() (ir.Parsed, error) {
	out, err := p.zip()
	if err != nil {
		return nil, err
	}
	for p.accept(KindPlus) {
		rhs, err := p.zip()
		if err != nil {
			return nil, err
		}
		out = cartesian(out, rhs)
	}
	return out, nil
}

func (p *parser) zip() (ir.Parsed, error) {
	out, err := p.sequence()
	if err != nil {
		return nil, err
	}
	for {
		l, ok := p.peek()
		if !ok || l.Kind != KindDotPlus {
			return out, nil
		}
		p.pos++
		rhs, err := p.sequence()
		if err != nil {
			return nil, err
		}
		if out, err = zipBranches(out, rhs); err != nil {
			if se, ok := err.(*Error); ok {
				se.Selector = p.src
				se.Pos = l.Pos
				se.Token = l.Text
			}
			return nil, err
		}
	}
}

func (p *parser) sequence() (ir.Parsed, error) {
	out, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		l, ok := p.peek()
		switch {
		case ok && l.Kind.IsLevel():
			p.pos++
			for i := range out {
				out[i] = append(out[i], l.Value)
			}
		case ok && l.Kind == KindLParen:
			group, err := p.primary()
			if err != nil {
				return nil, err
			}
			out = cartesian(out, group)
		default:
			return out, nil
		}
	}
}

func (p *parser) primary() (ir.Parsed, error) {
	l, ok := p.peek()
	if !ok {
		return nil, p.unexpected()
	}
	switch {
	case l.Kind.IsLevel():
		p.pos++
		return ir.Parsed{{l.Value}}, nil
	case l.Kind == KindLParen:
		p.pos++
		inner, err := p.alternation()
		if err != nil {
			return nil, err
		}
		if !p.accept(KindRParen) {
			return nil, p.unexpected()
		}
		return inner, nil
	default:
		return nil, p.unexpected()
	}
}

// cartesian appends every right branch to every left branch; the result has
// len(left)*len(right) branches with the left operand varying slowest.
func cartesian(left, right ir.Parsed) ir.Parsed {
	out := make(ir.Parsed, 0, len(left)*len(right))
	for _, a := range left {
		for _, b := range right {
			branch := make(ir.Branch, 0, len(a)+len(b))
			branch = append(branch, a...)
			out = append(out, append(branch, b...))
		}
	}
	return out
}

// zipBranches fully expands both operands and pairs identifier i of the
// left with identifier i of the right. Both operands must be unambiguous
// and expand to the same number of identifiers.
func zipBranches(left, right ir.Parsed) (ir.Parsed, error) {
	lids, err := expandParsed(left)
	if err != nil {
		return nil, err
	}
	rids, err := expandParsed(right)
	if err != nil {
		return nil, err
	}
	if len(lids) != len(rids) {
		return nil, NewArityError(fmt.Sprintf(
			"zip concatenation needs equal identifier counts, got %d and %d", len(lids), len(rids)))
	}
	out := make(ir.Parsed, len(lids))
	for i := range lids {
		out[i] = lids[i].Concat(rids[i]).Branch()
	}
	return out, nil
}
