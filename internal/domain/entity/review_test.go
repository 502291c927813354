package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRating(t *testing.T) {
	assert.True(t, ValidRating(MinRating))
	assert.True(t, ValidRating(3))
	assert.True(t, ValidRating(MaxRating))
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleBusiness.IsValid())
	assert.False(t, Role("admin").IsValid())
	assert.False(t, Role("").IsValid())
}
