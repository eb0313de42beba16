package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-reservation/config"
	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

const (
	ContextUser   = "user"
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// AuthMiddleware resolves the session cookie to a live user row. A valid
// token for a user that has since been deleted is rejected, matching the
// cookie expiry the token carries.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(utils.SessionCookie)
		if err != nil || tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("access denied, no token provided"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token"))
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, user.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the session user when a valid cookie is
// present but never rejects the request. Used on owner-or-admin endpoints
// where anonymous callers authenticate by other means (reservation phone).
func OptionalAuthMiddleware(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(utils.SessionCookie)
		if err == nil && tokenString != "" {
			if claims, err := utils.ParseToken(cfg.JWTSecret, tokenString); err == nil {
				var user models.User
				if err := db.First(&user, claims.UserID).Error; err == nil {
					c.Set(ContextUser, user)
					c.Set(ContextUserID, user.ID)
					c.Set(ContextRole, user.Role)
				}
			}
		}
		c.Next()
	}
}

// CurrentUser returns the session user set by the auth middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(ContextUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
