package middlewares

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-reservation/utils"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// RoleCheck lets the request through when the authenticated role is one of
// roles. Admin is always allowed. Must run after AuthMiddleware.
func RoleCheck(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, _ := userRole.(string)
		if role != RoleAdmin && !slices.Contains(roles, role) {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("role %q is not allowed here", role))
			c.Abort()
			return
		}

		c.Next()
	}
}
