package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer mints HS256 access tokens shaped like the ones the hosted auth
// provider hands out, for local development and tests.
type Issuer struct {
	Secret   []byte
	Issuer   string
	Audience []string
	TTL      time.Duration
}

func (i Issuer) CreateToken(subject string) (string, error) {
	if len(i.Secret) == 0 {
		return "", errors.New("auth: JWT secret key not set")
	}

	ttl := i.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.Issuer,
		Audience:  jwt.ClaimStrings(i.Audience),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(i.Secret)
}

// VerifyToken checks the signature and expiry and returns the subject.
func (i Issuer) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.Issuer),
	)
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", errors.New("invalid token")
	}

	return token.Claims.GetSubject()
}
