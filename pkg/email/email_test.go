package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Asha Rao", DisplayName(" Asha Rao ", "x@y.z"))
	assert.Equal(t, "Jane Doe", DisplayName("", "jane.doe@example.com"))
	assert.Equal(t, "Applicant", DisplayName("", "@example.com"))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Asha", FirstName("Asha Rao"))
	assert.Equal(t, "", FirstName("   "))
}
