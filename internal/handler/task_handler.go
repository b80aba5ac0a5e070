package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "taskify/internal/errors"
	"taskify/internal/service"
)

// TaskHandler handles task endpoints. All routes require a bearer token.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest represents the writable fields of a task. Date is a free-form
// "yyyy-mm-dd" string; it is matched exactly by the today view, never parsed.
type TaskRequest struct {
	Title         string   `json:"title" validate:"required,max=60"`
	Description   string   `json:"description" validate:"max=500"`
	Date          string   `json:"date"`
	Priority      string   `json:"priority"`
	RepeatDays    []string `json:"repeat_days"`
	ExcludedDates []string `json:"excluded_dates"`
}

func (r TaskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:         r.Title,
		Description:   r.Description,
		Date:          r.Date,
		Priority:      r.Priority,
		RepeatDays:    r.RepeatDays,
		ExcludedDates: r.ExcludedDates,
	}
}

// List godoc
// @Summary List tasks with optional filters and pagination
// @Tags tasks
// @Produce json
// @Param completed query bool false "Filter by completion"
// @Param priority query string false "Filter by priority (LOW, MEDIUM, HIGH)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} pagination.Page[model.Task]
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filters := service.ListFilters{Priority: c.QueryParam("priority")}
	if v := c.QueryParam("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid completed filter")
		}
		filters.Completed = &completed
	}

	page, err := h.taskService.List(c.Request().Context(), userID, filters, bindPagination(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// ListToday godoc
// @Summary List tasks scheduled for today
// @Tags tasks
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} pagination.Page[model.Task]
// @Security BearerAuth
// @Router /tasks/today [get]
func (h *TaskHandler) ListToday(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	page, err := h.taskService.ListToday(c.Request().Context(), userID, bindPagination(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task fields"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body TaskRequest true "Task fields"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Update(c.Request().Context(), id, userID, req.toInput())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), id, userID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}

// Complete godoc
// @Summary Mark a task completed or pending
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Param completed query bool true "Completed flag"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/complete [put]
func (h *TaskHandler) Complete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	completed, err := strconv.ParseBool(c.QueryParam("completed"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid completed flag")
	}

	task, err := h.taskService.ToggleComplete(c.Request().Context(), id, userID, completed)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// taskID parses the path id. A malformed id can never match a stored task, so
// it reports the same not-found as a missing one.
func taskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, httpError(apperrors.ErrTaskNotFound)
	}
	return id, nil
}
