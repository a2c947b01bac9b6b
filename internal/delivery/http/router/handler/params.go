package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// intQueryParam parses an integer query parameter, returning 0 when absent
// or malformed so use cases apply their own defaults.
func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}

// int64QueryParam parses an int64 query parameter the same way.
func int64QueryParam(c echo.Context, name string) int64 {
	value, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}

	return value
}

// floatQueryParam parses an optional float query parameter, reporting
// presence through the pointer.
func floatQueryParam(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &value
}
