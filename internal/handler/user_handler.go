package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskify/internal/service"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
