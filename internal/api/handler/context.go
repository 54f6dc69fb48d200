package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware. A missing
// or unparseable claim means the middleware did not run or the token is
// structurally unusable; reject with 401 before any service call.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get("user_id").(string)
	username, _ := c.Get("username").(string)
	rawRole, _ := c.Get("role").(string)

	role, ok := domain.ParseRole(rawRole)
	if id == "" || !ok {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return domain.Actor{ID: id, Username: username, Role: role}, nil
}
