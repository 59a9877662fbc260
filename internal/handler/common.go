// Package handler exposes the HTTP handlers: the public site API, the
// sign-in flow and the cookie-authenticated admin API.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mixtapemassey/site/internal/repository"
	"github.com/mixtapemassey/site/internal/validate"
)

// writeError maps repository and validation errors to JSON responses.
// In production, unexpected errors collapse to a generic message; in
// other environments the detail is included to ease debugging.
func writeError(c echo.Context, err error, prod bool) error {
	var ferr *validate.FieldError
	if errors.As(err, &ferr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ferr.Message, "field": ferr.Field})
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already exists"})
	case errors.Is(err, repository.ErrForeignKey):
		return c.JSON(http.StatusConflict, echo.Map{"error": "referenced record does not exist"})
	case errors.Is(err, repository.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not allowed"})
	}
	if prod {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
