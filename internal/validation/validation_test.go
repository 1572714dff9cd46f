package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_PostText(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"single byte", "a", ""},
		{"exactly the limit", strings.Repeat("a", MaxPostBytes), ""},
		{"empty", "", "text is required"},
		{"one byte over", strings.Repeat("a", MaxPostBytes+1), "text must be at most 1048576 bytes"},
		// 3 bytes per rune: under the limit in runes, over it in bytes
		{"multibyte over", strings.Repeat("€", MaxPostBytes/3+1), "text must be at most 1048576 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var("text", tt.text, PostText)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidator_Struct(t *testing.T) {
	type signup struct {
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required,min=8,max=72,password"`
	}
	v := New()

	assert.NoError(t, v.Struct(signup{Email: "a@example.com", Password: "Secr3t!pass"}))

	err := v.Struct(signup{Email: "nope", Password: "Secr3t!pass"})
	assert.EqualError(t, err, "email is invalid")

	err = v.Struct(signup{Email: "a@example.com", Password: "S3!a"})
	assert.EqualError(t, err, "password is too short")

	err = v.Struct(signup{Email: "a@example.com", Password: "alllowercase1!"})
	assert.ErrorContains(t, err, "password must contain")

	err = v.Struct(signup{})
	assert.EqualError(t, err, "email is required; password is required")
}

func TestStrongPassword(t *testing.T) {
	v := New()
	for pass, ok := range map[string]bool{
		"Secr3t!pass":  true,
		"Aa1@aaaa":     true,
		"Secr3tpass":   false, // no special
		"SECR3T!PASS":  false, // no lowercase
		"Secret!pass":  false, // no digit
		"Secr3t!pass#": false, // # is not an allowed character
	} {
		err := v.Var("password", pass, "password")
		if ok {
			assert.NoError(t, err, pass)
		} else {
			assert.Error(t, err, pass)
		}
	}
}
