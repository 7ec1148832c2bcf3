package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal/internal/models"
	appErrors "github.com/noah-isme/campus-portal/pkg/errors"
	"github.com/noah-isme/campus-portal/pkg/response"
)

type phaseReporter interface {
	Phase() models.AuthPhase
	CurrentUser() *models.AdminUser
}

// RequireSession rejects requests while the console has no authenticated content API
// session, or when the token belongs to a different operator than the live session.
func RequireSession(console phaseReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if console.Phase() != models.AuthAuthenticated {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Session expired. Please log in again."))
			c.Abort()
			return
		}
		if claims := ClaimsFrom(c); claims != nil {
			if user := console.CurrentUser(); user != nil && user.Username != claims.Username {
				response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "token belongs to another operator"))
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
