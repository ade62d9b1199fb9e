package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := ValidationErrorf("quantity must be greater than %d", 0)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation error: quantity must be greater than 0", err.Error())

	err = NotFoundErrorf("order %d", 42)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))

	err = ConflictErrorf("customer profile already exists")
	assert.True(t, errors.Is(err, ErrConflict))
}
