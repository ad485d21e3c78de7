package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secureexam/portal-backend/internal/response"
	"github.com/secureexam/portal-backend/internal/service"
)

// RequireRole is the single role guard: it checks the already-validated
// claims against the role a route group demands. Runs after RequireAuth.
func RequireRole(role service.TokenType) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if claims.TokenType != role {
			code := response.ErrForbidden
			switch role {
			case service.TokenTypeStudent:
				code = response.ErrStudentAccessOnly
			case service.TokenTypeAdmin:
				code = response.ErrAdminAccessOnly
			}
			response.AbortFail(c, http.StatusForbidden, code)
			return
		}

		c.Next()
	}
}
