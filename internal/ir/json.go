package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// sliceTag is the type tag used to carry an Interval across JSON, which has
// no native range type:
//
//	{"type": "slice", "data": [start_or_null, stop_or_null, step_or_null]}
const sliceTag = "slice"

type taggedSlice struct {
	Type string   `json:"type"`
	Data []*int64 `json:"data"`
}

// MarshalJSON implements json.Marshaler for Parsed.
// Str/Int/sets use native JSON types; Wildcard is "*"; Interval is tagged.
func (p Parsed) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := b.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("branch %d: %w", i, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Branch.
func (b Branch) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, tok := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := MarshalToken(tok)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalToken marshals a single Token to JSON bytes.
// Uses type-switch dispatch to handle all Token types.
func MarshalToken(tok Token) ([]byte, error) {
	switch t := tok.(type) {
	case Wildcard:
		return []byte(`"*"`), nil
	case Str:
		return json.Marshal(string(t))
	case Int:
		return json.Marshal(int64(t))
	case StrSet:
		return json.Marshal([]string(t))
	case IntSet:
		return json.Marshal([]int64(t))
	case Interval:
		return json.Marshal(taggedSlice{
			Type: sliceTag,
			Data: []*int64{t.Start, t.Stop, nil},
		})
	default:
		return nil, fmt.Errorf("unknown Token type: %T", tok)
	}
}

// UnmarshalJSON implements json.Unmarshaler for Parsed.
func (p *Parsed) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = make(Parsed, len(raw))
	for i, r := range raw {
		var b Branch
		if err := json.Unmarshal(r, &b); err != nil {
			return fmt.Errorf("branch %d: %w", i, err)
		}
		(*p)[i] = b
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Branch.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = make(Branch, len(raw))
	for i, r := range raw {
		tok, err := UnmarshalToken(r)
		if err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
		(*b)[i] = tok
	}
	return nil
}

// UnmarshalToken decodes a JSON value produced by MarshalToken.
// Floats, booleans, null and empty sets are rejected.
func UnmarshalToken(data []byte) (Token, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if s == "*" {
			return Wildcard{}, nil
		}
		return Str(s), nil

	case '[':
		return unmarshalSet(data)

	case '{':
		var ts taggedSlice
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil, err
		}
		if ts.Type != sliceTag {
			return nil, fmt.Errorf("unknown tagged type %q", ts.Type)
		}
		if len(ts.Data) != 3 {
			return nil, fmt.Errorf("slice data must have 3 entries, got %d", len(ts.Data))
		}
		if ts.Data[2] != nil && *ts.Data[2] != 1 {
			return nil, fmt.Errorf("slice step %d not supported", *ts.Data[2])
		}
		return Interval{Start: ts.Data[0], Stop: ts.Data[1]}, nil

	default:
		n, err := unmarshalInt(data)
		if err != nil {
			return nil, err
		}
		return Int(n), nil
	}
}

// unmarshalSet decodes a JSON array into a StrSet or IntSet.
// Mixed arrays are rejected.
func unmarshalSet(data []byte) (Token, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty set is not a valid token")
	}

	if bytes.HasPrefix(bytes.TrimSpace(raw[0]), []byte(`"`)) {
		set := make(StrSet, len(raw))
		for i, r := range raw {
			if err := json.Unmarshal(r, &set[i]); err != nil {
				return nil, fmt.Errorf("set[%d]: mixed or invalid member: %w", i, err)
			}
		}
		return set, nil
	}

	set := make(IntSet, len(raw))
	for i, r := range raw {
		n, err := unmarshalInt(r)
		if err != nil {
			return nil, fmt.Errorf("set[%d]: %w", i, err)
		}
		set[i] = n
	}
	return set, nil
}

// unmarshalInt decodes a JSON number, rejecting floats.
func unmarshalInt(data []byte) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("floats not allowed in selectors: %s", n)
	}
	return i, nil
}

// MarshalJSON implements json.Marshaler for Identifier.
func (id Identifier) MarshalJSON() ([]byte, error) {
	return id.Branch().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler for Identifier.
// Only string and integer atoms are accepted.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var b Branch
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*id = make(Identifier, len(b))
	for i, tok := range b {
		a, ok := tok.(Atom)
		if !ok {
			return fmt.Errorf("identifier level %d: %T is not a concrete atom", i, tok)
		}
		(*id)[i] = a
	}
	return nil
}
