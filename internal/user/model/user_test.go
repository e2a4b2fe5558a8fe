package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.ErrorIs(t, ValidateUsername(""), ErrInvalidUsername)
	assert.ErrorIs(t, ValidateUsername("   "), ErrInvalidUsername)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.NoError(t, ValidatePassword("exactly8"))
	assert.ErrorIs(t, ValidatePassword("seven77"), ErrInvalidPassword)
	assert.ErrorIs(t, ValidatePassword(""), ErrInvalidPassword)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@x.com", NormalizeEmail(" Alice@X.com "))
}
