package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("my-slyde_1"))
	assert.NoError(t, ValidateSlug("coastal-cafe"))
	assert.NoError(t, ValidateSlug("ABC")) // lowercased before validation

	assert.Error(t, ValidateSlug("admin"), "reserved")
	assert.Error(t, ValidateSlug("ab"), "too short")
	assert.Error(t, ValidateSlug("has space"))
	assert.Error(t, ValidateSlug("-leading-hyphen"))
	assert.Error(t, ValidateSlug("waytoolongslugwaytoolongslugwaytoolong"))
}

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "coastal", NormalizeSlug("  Coastal "))
}
