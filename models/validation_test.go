package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.Err())

	verr.Add("client_id", "is required")
	verr.Add("beef.super.pricing.delivered", "must not be negative")

	err := verr.Err()
	require.Error(t, err)
	assert.True(t, verr.Has("client_id"))
	assert.False(t, verr.Has("id"))
	assert.Equal(t, "validation failed: client_id: is required; beef.super.pricing.delivered: must not be negative", err.Error())

	wrapped := fmt.Errorf("failed to create price list: %w", err)
	got, ok := AsValidationError(wrapped)
	require.True(t, ok)
	assert.Len(t, got.Fields, 2)

	_, ok = AsValidationError(fmt.Errorf("boom"))
	assert.False(t, ok)
}
