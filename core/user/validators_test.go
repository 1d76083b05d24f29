package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edutrack/core"
)

func TestPasswordPolicyViolation(t *testing.T) {
	tests := []struct {
		name  string
		pwd   string
		attrs []string
		want  string
	}{
		{name: "too short", pwd: "Ab1&", want: pwdMinLenTag},
		{name: "over 72 bytes", pwd: "A1!" + strings.Repeat("é", 37), want: pwdMaxBytesTag},
		{name: "72 bytes", pwd: "A1!" + strings.Repeat("é", 34) + "x"},
		{name: "whitespace", pwd: "Abcd 1234&", want: pwdNoSpaceTag},
		{name: "all numeric", pwd: "1234567890", want: pwdNotAllNumTag},
		{name: "no upper", pwd: "abcd1234&", want: pwdComplexityTag},
		{name: "no special", pwd: "Abcd12345", want: pwdComplexityTag},
		{name: "similar to username", pwd: "Jdoe&1234", attrs: []string{"jdoe1234"}, want: pwdAttrSimTag},
		{name: "valid", pwd: "Tr0ub4dor&3x", attrs: []string{"alice", "alice@school.test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, passwordPolicyViolation(tt.pwd, tt.attrs...))
		})
	}
}

func TestCheckPasswordPolicy(t *testing.T) {
	err := CheckPasswordPolicy("password")
	if assert.Error(t, err) {
		verr, ok := err.(*core.ValidationError)
		if assert.True(t, ok) {
			assert.Equal(t, []core.FieldError{{Field: "password", Error: pwdComplexityText}}, verr.Fields)
		}
	}
	assert.NoError(t, CheckPasswordPolicy("Tr0ub4dor&3x", "admin"))
}
