package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{
			name:     "repeated applicant ids collapse",
			input:    []string{"665f1c2e9b1e8a0012345678", " 665f1c2e9b1e8a0012345678 ", "665f1c2e9b1e8a0087654321"},
			expected: []string{"665f1c2e9b1e8a0012345678", "665f1c2e9b1e8a0087654321"},
		},
		{
			name:     "blanks dropped",
			input:    []string{"a", "", "  ", "b"},
			expected: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
