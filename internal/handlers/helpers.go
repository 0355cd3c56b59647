package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopbee/backend/internal/transport"
)

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, transport.Response{
		Success: false,
		Message: err.Error(),
	})
}

func messageResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.Response{
		Success: true,
		Message: msg,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(400, "invalid id")
	}
	return uint(id), nil
}
