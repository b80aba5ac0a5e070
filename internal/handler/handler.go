package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"taskify/internal/auth"
	apperrors "taskify/internal/errors"
	"taskify/internal/pagination"
)

// httpError translates a domain error into an echo HTTP error with the
// standardized body.
func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// currentUserID extracts the authenticated user's id from the JWT placed in
// context by the auth middleware.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims.UserID, nil
}

// bindPagination reads optional page/size query parameters. Absent or zero
// size means the caller wants everything in one page.
func bindPagination(c echo.Context) pagination.Params {
	params := pagination.Params{Page: 1}
	if v := c.QueryParam("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			params.Page = page
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			params.Size = size
		}
	}
	return params
}
