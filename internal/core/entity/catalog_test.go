package entity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
)

func TestNewCatalog(t *testing.T) {
	c := NewCatalog("flour")

	assert.Equal(t, "flour", c.Name)
	assert.False(t, id.IsNil(c.ID), "id must be generated")
	assert.Equal(t, 1, c.Version)
	assert.False(t, c.DeletionMark)
}

func TestCatalogValidate(t *testing.T) {
	c := NewCatalog("flour")
	require.NoError(t, c.Validate(context.Background()))

	c.Name = ""
	err := c.Validate(context.Background())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
