package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.CreateToken(42)
	require.NoError(t, err)

	id, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret", time.Hour).CreateToken(1)
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)
	token, err := issuer.CreateToken(1)
	require.NoError(t, err)

	_, err = issuer.ParseToken(token)
	assert.Error(t, err)
}

func TestExtractTokenID(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.CreateToken(7)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/feeds", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	id, err := issuer.ExtractTokenID(req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	req = httptest.NewRequest("GET", "/api/v1/feeds?token="+token, nil)
	id, err = issuer.ExtractTokenID(req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	_, err = issuer.ExtractTokenID(httptest.NewRequest("GET", "/api/v1/feeds", nil))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
