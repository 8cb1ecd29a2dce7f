package selector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpersUnwrap(t *testing.T) {
	err := fmt.Errorf("building index: %w", NewLevelMismatchError("/a/b/c", 3, 2))

	assert.True(t, IsLevelMismatchError(err))
	assert.True(t, IsArityError(err), "level mismatch is an arity error")
	assert.False(t, IsAmbiguousError(err))
	assert.False(t, IsArityError(fmt.Errorf("plain")))
}

func TestErrorMessage(t *testing.T) {
	err := NewTokenizeError("/a:b", 2, ":")
	assert.Equal(t, `TOKENIZE_ERROR: illegal character ":" (selector="/a:b", pos=2)`, err.Error())

	err = NewLengthError("values", 3, 2)
	assert.Equal(t, "LENGTH_MISMATCH: values length 3 does not match expected 2", err.Error())
	assert.True(t, IsLengthError(err))

	err = NewAmbiguousError("expand", "/a/*")
	assert.Equal(t, `AMBIGUOUS_SELECTOR: expand requires an unambiguous selector (selector="/a/*")`, err.Error())
}
