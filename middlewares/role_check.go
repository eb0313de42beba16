package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

// AdminOnly rejects requests whose session user is not an admin. Must run
// after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("access denied, admin role required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
