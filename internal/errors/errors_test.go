package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("%w: username %q", ErrUsernameTaken, "Alice")

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, stderrors.Is(err, ErrUsernameTaken))

	de, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "username already exists", de.Message)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(stderrors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
	assert.Equal(t, "internal", Kind(99).String())
}
