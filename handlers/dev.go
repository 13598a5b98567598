package handlers

import (
	"net/http"

	"github.com/andrewpaige1/flashcards-api/auth"
	"github.com/andrewpaige1/flashcards-api/config"
	"github.com/andrewpaige1/flashcards-api/utils"
)

// DevToken signs in the fixed development user. Only mounted outside
// production. A still-valid cookie for that user is handed back as is.
func DevToken(issuer auth.Issuer, env config.Environment, devUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(utils.TokenCookie); err == nil {
			if subject, err := issuer.VerifyToken(cookie.Value); err == nil && subject == devUserID {
				writeJSON(w, http.StatusOK, map[string]string{"token": cookie.Value, "user_id": devUserID})
				return
			}
		}

		tokenString, err := issuer.CreateToken(devUserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     utils.TokenCookie,
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
			Domain:   env.Domain,
			Secure:   env.CookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   86400, // 24 hours
		})

		writeJSON(w, http.StatusOK, map[string]string{"token": tokenString, "user_id": devUserID})
	}
}
