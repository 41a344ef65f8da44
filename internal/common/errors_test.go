package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorUnwraps(t *testing.T) {
	err := NewAppError("NOT_FOUND", "result abc", ErrNotFound)
	assert.Equal(t, "NOT_FOUND: result abc: resource not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	bare := NewAppError("CONFIG_ERROR", "bad value", nil)
	assert.Equal(t, "CONFIG_ERROR: bad value", bare.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "anything"))

	cause := errors.New("disk full")
	wrapped := WrapError(cause, "write report")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "write report: disk full", wrapped.Error())
}
