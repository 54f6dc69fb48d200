package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
)

// UserHandler serves the cached directory views.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userListResponse struct {
	Status bool           `json:"status"`
	Data   []*domain.User `json:"data"`
}

type userDetailResponse struct {
	Status bool         `json:"status"`
	Data   *domain.User `json:"data"`
}

// Me handles GET /api/v1/user/me.
//
// @Summary      Authenticated user details
// @Description  Served through the read-through cache.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.Detail(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userDetailResponse{Status: true, Data: user})
}

// List handles GET /api/v1/user.
//
// @Summary      List users
// @Description  Admin sees every user; a Manager only their own reports. Served through the read-through cache.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /user [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userListResponse{Status: true, Data: users})
}
