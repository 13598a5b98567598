package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifyToken(t *testing.T) {
	iss := Issuer{Secret: []byte("secret"), Issuer: "flashcards-api", Audience: []string{"authenticated"}}

	token, err := iss.CreateToken("user-1")
	require.NoError(t, err)

	sub, err := iss.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestVerifyToken_Rejects(t *testing.T) {
	iss := Issuer{Secret: []byte("secret"), Issuer: "flashcards-api"}

	other := Issuer{Secret: []byte("other"), Issuer: "flashcards-api"}
	token, err := other.CreateToken("user-1")
	require.NoError(t, err)
	_, err = iss.VerifyToken(token)
	assert.Error(t, err, "wrong secret")

	expired := Issuer{Secret: []byte("secret"), Issuer: "flashcards-api", TTL: -time.Minute}
	token, err = expired.CreateToken("user-1")
	require.NoError(t, err)
	_, err = iss.VerifyToken(token)
	assert.Error(t, err, "expired")
}

func TestCreateToken_RequiresSecret(t *testing.T) {
	_, err := Issuer{}.CreateToken("user-1")
	assert.Error(t, err)
}
