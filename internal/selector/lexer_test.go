package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/plsel/internal/ir"
)

func kinds(lexemes []Lexeme) []Kind {
	out := make([]Kind, len(lexemes))
	for i, l := range lexemes {
		out[i] = l.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []Kind
	}{
		{"string and interval", "/foo[0:2]", []Kind{KindString, KindInterval}},
		{"wildcard", "/foo/*", []Kind{KindString, KindAsterisk}},
		{"integer", "/foo/12", []Kind{KindString, KindInteger}},
		{"sets", "/[a,b][0,2]", []Kind{KindStringSet, KindIntegerSet}},
		{"combinators", "(/a,/b)+/c.+/d", []Kind{
			KindLParen, KindString, KindComma, KindString, KindRParen,
			KindPlus, KindString, KindDotPlus, KindString,
		}},
		{"whitespace ignored", " /a , /b ", []Kind{KindString, KindComma, KindString}},
		{"slash optional before brackets", "/[0:2]", []Kind{KindInterval}},
		{"digits inside string", "/gpu0/x1", []Kind{KindString, KindString}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lexemes, err := Tokenize(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, kinds(lexemes))
		})
	}
}

func TestTokenizeValues(t *testing.T) {
	toks, err := Tokens("/foo/3/*[1,2][a,b][2:5][:4][7:]")
	require.NoError(t, err)

	start, stop := int64(7), int64(4)
	assert.Equal(t, []ir.Token{
		ir.Str("foo"),
		ir.Int(3),
		ir.Wildcard{},
		ir.IntSet{1, 2},
		ir.StrSet{"a", "b"},
		ir.NewInterval(2, 5),
		ir.Interval{Stop: &stop},
		ir.Interval{Start: &start},
	}, toks)
}

func TestTokenizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		lexemes, err := Tokenize(in)
		require.NoError(t, err)
		assert.Empty(t, lexemes)
	}
}

func TestTokenizeRecordsPositions(t *testing.T) {
	lexemes, err := Tokenize("/a, /bc[0:2]")
	require.NoError(t, err)
	require.Len(t, lexemes, 4)
	assert.Equal(t, 0, lexemes[0].Pos)
	assert.Equal(t, 2, lexemes[1].Pos)
	assert.Equal(t, 4, lexemes[2].Pos)
	assert.Equal(t, "/bc", lexemes[2].Text)
	assert.Equal(t, 7, lexemes[3].Pos)
}

func TestTokenizeNormalizesStrings(t *testing.T) {
	composed, err := Tokens("/caf\u00e9")
	require.NoError(t, err)
	decomposed, err := Tokens("/cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestTokenizeErrors(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		pos  int
		tok  string
	}{
		{"bare name", "foo", 0, "f"},
		{"trailing slash", "/foo/", 4, "/"},
		{"lone dot", "/a.b", 2, "."},
		{"unclosed bracket", "/a[0:2", 2, "["},
		{"empty set", "/a[]", 3, "]"},
		{"mixed int set", "/a[0,b]", 5, "b"},
		{"mixed string set", "/a[b,0]", 5, "0"},
		{"bad interval", "/a[x:2]", 3, "x"},
		{"double colon", "/a[0:2:1]", 6, ":"},
		{"space in set", "/[a, b]", 4, " "},
		{"colon", "/a:b", 2, ":"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.in)
			require.Error(t, err)
			assert.True(t, IsTokenizeError(err))

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.pos, se.Pos)
			assert.Equal(t, tc.tok, se.Token)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "INTEGER_SET", KindIntegerSet.String())
	assert.Equal(t, "DOTPLUS", KindDotPlus.String())
	assert.True(t, KindInterval.IsLevel())
	assert.False(t, KindComma.IsLevel())
}
