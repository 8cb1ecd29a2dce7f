package selector

import (
	"fmt"

	"github.com/roach88/plsel/internal/ir"
)

// Like is a sealed union of the forms a selector can be supplied in:
// Text, Parsed, Identifiers, or a validated *Selector. Every public
// operation normalizes its input once through ToParsed.
type Like interface {
	like()
}

// Text is selector source text such as "/foo[0:2]".
type Text string

func (Text) like() {}

// Parsed is an already-parsed branch list.
type Parsed ir.Parsed

func (Parsed) like() {}

// Identifiers is a list of concrete identifiers; each becomes one branch.
type Identifiers []ir.Identifier

func (Identifiers) like() {}

func (*Selector) like() {}

// ToParsed normalizes any selector form into its branch list.
//
// The returned value may be shared with the parse cache or the input;
// callers must treat it as read-only.
func ToParsed(sel Like) (ir.Parsed, error) {
	switch s := sel.(type) {
	case Text:
		return parseCached(string(s))
	case Parsed:
		return ir.Parsed(s), nil
	case Identifiers:
		out := make(ir.Parsed, len(s))
		for i, id := range s {
			out[i] = id.Branch()
		}
		return out, nil
	case *Selector:
		if s == nil {
			return ir.Parsed{{}}, nil
		}
		return s.parsed, nil
	case nil:
		return ir.Parsed{{}}, nil
	default:
		return nil, fmt.Errorf("unsupported selector form: %T", sel)
	}
}

// describe renders a selector for error messages.
func describe(sel Like) string {
	switch s := sel.(type) {
	case Text:
		return string(s)
	case *Selector:
		if s != nil {
			return s.str
		}
	case Parsed:
		return ir.Parsed(s).String()
	case Identifiers:
		p, _ := ToParsed(s)
		return p.String()
	}
	return ""
}
