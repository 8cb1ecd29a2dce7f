package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		selectors map[string]string
		groups    map[string][]string
		want      []string
	}{
		{
			name:      "valid",
			selectors: map[string]string{"a": "/a[0:2]", "b": "/b", "wild": "/a/*"},
			groups:    map[string][]string{"g": {"a", "b"}},
			want:      []string{},
		},
		{
			name:      "empty name",
			selectors: map[string]string{"": "/a"},
			want:      []string{ErrEmptyName},
		},
		{
			name:      "unparsable",
			selectors: map[string]string{"bad": "/a,,"},
			want:      []string{ErrUnparsable},
		},
		{
			name:      "unparsable member reported once",
			selectors: map[string]string{"bad": "/a:", "b": "/b"},
			groups:    map[string][]string{"g": {"bad", "b"}},
			want:      []string{ErrUnparsable},
		},
		{
			name:      "unknown member",
			selectors: map[string]string{"a": "/a"},
			groups:    map[string][]string{"g": {"a", "ghost"}},
			want:      []string{ErrUnknownMember},
		},
		{
			name:      "ambiguous member",
			selectors: map[string]string{"a": "/a", "w": "/b[1:]"},
			groups:    map[string][]string{"g": {"a", "w"}},
			want:      []string{ErrAmbiguousMember},
		},
		{
			name:      "overlap",
			selectors: map[string]string{"a": "/x[0:3]", "b": "/x[2:5]", "c": "/y"},
			groups:    map[string][]string{"g": {"a", "b", "c"}},
			want:      []string{ErrNotDisjoint},
		},
		{
			name:      "empty group",
			selectors: map[string]string{"a": "/a"},
			groups:    map[string][]string{"g": {}},
			want:      []string{ErrEmptyGroup},
		},
		{
			name:      "duplicate member",
			selectors: map[string]string{"a": "/a"},
			groups:    map[string][]string{"g": {"a", "a"}},
			want:      []string{ErrDuplicateMember},
		},
		{
			name:      "empty group name",
			selectors: map[string]string{"a": "/a"},
			groups:    map[string][]string{"": {"a"}},
			want:      []string{ErrEmptyGroupName},
		},
		{
			name:      "collects every error",
			selectors: map[string]string{"a": "/x", "b": "/x", "bad": "["},
			groups:    map[string][]string{"g1": {"a", "b"}, "g2": {"nope"}},
			want:      []string{ErrUnparsable, ErrNotDisjoint, ErrUnknownMember},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate(New(tc.selectors, tc.groups))
			assert.Equal(t, tc.want, codes(errs))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "groups.g", Message: `selectors "a" and "b" overlap`, Code: ErrNotDisjoint}
	assert.Equal(t, `[E205] groups.g: selectors "a" and "b" overlap`, err.Error())
}
