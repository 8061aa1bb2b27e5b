// Package middleware holds the echo-level plumbing shared by every handler.
package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hotelworks/room-engine/internal/dto"
)

// ErrorHandler renders every error through the engine's JSON error envelope.
// Handlers raise echo.HTTPError with the mapped status; anything else is an
// internal error.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	if err := c.JSON(code, dto.ErrorResponse{Message: msg}); err != nil {
		log.Printf("[HTTP] failed to write error response: %v", err)
	}
}
