package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Unwrap(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation: title: required", err.Error())
}

func TestValidationError_Multiple(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "servings", Message: "must be positive"},
	})
	assert.Equal(t, "validation: 2 errors", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSentinels_SurviveWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("recipe %s: %w", "abc", ErrNotFound)
	assert.ErrorIs(t, wrapped, ErrNotFound)

	var verr *ValidationError
	err := fmt.Errorf("create: %w", NewValidationError("code", "bad"))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "code", verr.Errors[0].Field)
}
