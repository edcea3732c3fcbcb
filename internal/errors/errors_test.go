package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("templates/t.yaml", "missing required field").WithField("industry")
	assert.Equal(t, "templates/t.yaml: field industry: missing required field", err.Error())

	bare := NewValidationError("", "bad value")
	assert.Equal(t, "bad value", bare.Error())

	cause := fmt.Errorf("invalid industry %q", "fintech")
	wrapped := WrapValidation("t.yaml", "invalid value", cause)
	assert.Contains(t, wrapped.Error(), "t.yaml: invalid value")
	assert.Contains(t, wrapped.Error(), "fintech")
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestIsValidation(t *testing.T) {
	direct := NewValidationError("t.yaml", "boom")
	assert.True(t, IsValidation(direct))

	wrapped := fmt.Errorf("loading: %w", direct)
	assert.True(t, IsValidation(wrapped))

	assert.False(t, IsValidation(fmt.Errorf("plain")))
	assert.False(t, IsValidation(nil))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("templates/missing.yaml")
	require.EqualError(t, err, "template file not found: templates/missing.yaml")

	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("load: %w", err)))
	assert.False(t, IsNotFound(NewValidationError("x", "y")))
}
