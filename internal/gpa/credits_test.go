package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditsFromCode(t *testing.T) {
	cases := []struct {
		code    string
		credits int
		ok      bool
	}{
		{"CS104", 4, true},
		{"MATH301", 1, true},
		{"PHYS2054", 4, true},
		{"ENG3", 3, true},
		{"IT1009", 9, true},
		{"ABCX", 0, false},
		{"CS10X", 0, false},
		{"", 0, false},
		{"CS100", 0, false}, // a trailing 0 is not a usable credit amount
	}

	for _, tc := range cases {
		credits, ok := CreditsFromCode(tc.code)
		assert.Equal(t, tc.ok, ok, tc.code)
		assert.Equal(t, tc.credits, credits, tc.code)
	}
}
