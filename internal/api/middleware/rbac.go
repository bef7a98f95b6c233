package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/internal/model"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
)

// Capability actions checked by the policy.
const (
	ActionManagePlans       = "plans:manage"
	ActionAssignMemberships = "memberships:assign"
	ActionViewClients       = "clients:view"
	ActionManageUsers       = "users:manage"
	ActionViewPayments      = "payments:view"
	ActionManageCatalog     = "catalog:manage"
	ActionRegisterAdmins    = "admins:register"
)

// Policy is the single capability check: can this role perform this action.
// Handlers never compare role strings directly.
func Policy(role, action string) bool {
	switch role {
	case model.RoleAdmin:
		return true
	default:
		return false
	}
}

// Require aborts with a permission error unless the policy allows the action.
func Require(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Policy(GetRole(c), action) {
			response.PermissionError(c, "no tienes permiso para esta operación")
			c.Abort()
			return
		}
		c.Next()
	}
}
