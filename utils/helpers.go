package utils

import (
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// TokenCookie is the cookie the web client stores its access token in.
const TokenCookie = "auth_token"

// TokenExtractor reads the bearer header first, then the cookie.
var TokenExtractor = jwtmiddleware.MultiTokenExtractor(
	jwtmiddleware.AuthHeaderTokenExtractor,
	cookieTokenExtractor,
)

// A missing cookie means no credentials, not a malformed request.
func cookieTokenExtractor(r *http.Request) (string, error) {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return "", nil
	}
	return cookie.Value, nil
}

func validatedClaims(r *http.Request) (*validator.ValidatedClaims, bool) {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	return claims, ok && claims != nil
}

// GetOwnerID returns the subject of the validated token.
func GetOwnerID(r *http.Request) (string, bool) {
	claims, ok := validatedClaims(r)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return "", false
	}
	return claims.RegisteredClaims.Subject, true
}

// GetAccessToken returns the raw token the request was authenticated with.
func GetAccessToken(r *http.Request) string {
	token, err := TokenExtractor(r)
	if err != nil {
		return ""
	}
	return token
}
