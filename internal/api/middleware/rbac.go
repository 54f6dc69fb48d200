package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management/internal/core/domain"
)

// RBAC rejects requests whose authenticated role is not in allowedRoles.
// This is the route-level gate; the services re-check the full policy
// before any mutation.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := domain.ParseRole(raw)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
