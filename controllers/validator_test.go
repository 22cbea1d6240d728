package controllers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomValidators(t *testing.T) {
	RegisterValidators()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	assert.NoError(t, v.Var("9876543210", "phone10"))
	assert.Error(t, v.Var("98765", "phone10"))
	assert.Error(t, v.Var("98765432101", "phone10"))
	assert.Error(t, v.Var("98765abcde", "phone10"))

	assert.NoError(t, v.Var("411001", "zip6"))
	assert.Error(t, v.Var("4110", "zip6"))
	assert.Error(t, v.Var("41100a", "zip6"))
}
