package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management/internal/api/metrics"
	"github.com/taskforge/task-management/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/v1/task.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), actor, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Assign handles PUT /api/v1/task/:id/assign.
//
// @Summary      Assign a task to a user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      assignTaskRequest  true  "Assignee"
// @Success      200   {object}  taskResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /task/{id}/assign [put]
func (h *TaskHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Assign(c.Request().Context(), ports.AssignTaskInput{
		TaskID: c.Param("id"),
		UserID: req.AssignedUser,
		Actor:  actor,
	})
	if err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("assign").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /api/v1/task/:id.
//
// @Summary      Update a task
// @Description  Admin and Manager can modify any field; role User can only change the status of a task assigned to them.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /task/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), ports.UpdateTaskInput{
		TaskID:      c.Param("id"),
		Actor:       actor,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/v1/task/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task ID"
// @Success      200 {object}  messageResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /task/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.TaskMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Status: true, Message: "task deleted successfully"})
}

// List handles GET /api/v1/task.
//
// @Summary      List all tasks
// @Description  Optional filters: exact status match and case-insensitive title substring.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"  Enums(Pending, Completed)
// @Param        search  query     string  false  "Title substring"
// @Success      200     {object}  taskListResponse
// @Failure      403     {object}  errorResponse
// @Router       /task [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), actor, ports.TaskFilter{
		Status:      c.QueryParam("status"),
		TitleSearch: c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskListResponse{Status: true, Data: toTaskListResponse(tasks)})
}

// Mine handles GET /api/v1/task/mine.
//
// @Summary      List tasks assigned to the authenticated user
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  taskListResponse
// @Failure      404  {object}  errorResponse
// @Router       /task/mine [get]
func (h *TaskHandler) Mine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.MyTasks(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskListResponse{Status: true, Data: toTaskListResponse(tasks)})
}

// Analytics handles GET /api/v1/task/analytics.
//
// @Summary      Task analytics
// @Description  Counts of completed, pending, and overdue tasks.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Analytics
// @Failure      403  {object}  errorResponse
// @Router       /task/analytics [get]
func (h *TaskHandler) Analytics(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	analytics, err := h.service.Analytics(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analytics)
}
