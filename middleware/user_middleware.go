package middleware

import (
	"errors"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/andrewpaige1/flashcards-api/models"
)

// SyncUserMiddleware ensures the token's subject has a users row before a
// write reaches the handler.
func SyncUserMiddleware(db *gorm.DB, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			if !ok || claims.RegisteredClaims.Subject == "" {
				// Let the handler answer 401 in its usual shape
				next(w, r)
				return
			}

			authID := claims.RegisteredClaims.Subject
			nickname := ""
			if customClaims, ok := claims.CustomClaims.(*CustomClaims); ok && customClaims != nil {
				nickname = customClaims.Nickname
			}

			var user models.User
			result := db.WithContext(r.Context()).Where("auth_id = ?", authID).First(&user)

			switch {
			case errors.Is(result.Error, gorm.ErrRecordNotFound):
				user = models.User{AuthID: authID, Nickname: nickname}
				if err := db.WithContext(r.Context()).Create(&user).Error; err != nil {
					logger.Error("Failed to create user", zap.String("authID", authID), zap.Error(err))
					writeError(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
				logger.Info("Created new user", zap.String("authID", authID))
			case result.Error != nil:
				logger.Error("Failed to look up user", zap.String("authID", authID), zap.Error(result.Error))
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			case nickname != "" && user.Nickname != nickname:
				user.Nickname = nickname
				if err := db.WithContext(r.Context()).Save(&user).Error; err != nil {
					logger.Error("Failed to update user", zap.String("authID", authID), zap.Error(err))
					writeError(w, http.StatusInternalServerError, "Internal Server Error")
					return
				}
			}

			next(w, r)
		}
	}
}
