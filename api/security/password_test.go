package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("secret12")
	require.NoError(t, err)
	assert.NotEqual(t, "secret12", string(hashed))

	assert.NoError(t, VerifyPassword(string(hashed), "secret12"))
	assert.Error(t, VerifyPassword(string(hashed), "secret13"))
}

func TestCheckPasswordPolicy(t *testing.T) {
	cases := map[string]bool{
		"abc12":                 false,
		"abcdef":                false,
		"123456":                false,
		"!@#$%^":                false,
		"abc123":                true,
		"abc!de":                true,
		"123!45":                true,
		"Abc123!@":              true,
		"abc 123":               true,
		"abcdefghij1234567890x": false,
		"비밀번호123":               false,
		"비밀번호12a":              true,
	}
	for password, want := range cases {
		assert.Equal(t, want, CheckPasswordPolicy(password), password)
	}
}
