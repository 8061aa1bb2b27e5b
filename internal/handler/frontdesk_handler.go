package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelworks/room-engine/internal/dto"
	"github.com/hotelworks/room-engine/internal/service"
)

type FrontDeskHandler struct {
	svc service.FrontDeskService
}

func NewFrontDeskHandler(svc service.FrontDeskService) *FrontDeskHandler {
	return &FrontDeskHandler{svc: svc}
}

func (h *FrontDeskHandler) RegisterRoutes(e *echo.Echo) {
	fd := e.Group("/api/v1/frontdesk")
	fd.GET("/stats", h.Stats)
	fd.GET("/guests", h.CurrentGuests)
	fd.GET("/arrivals", h.Arrivals)
	fd.GET("/departures", h.Departures)
}

func (h *FrontDeskHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *FrontDeskHandler) CurrentGuests(c echo.Context) error {
	stays, err := h.svc.CurrentGuests(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stays)
}

func (h *FrontDeskHandler) Arrivals(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.Arrivals(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *FrontDeskHandler) Departures(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.Departures(c.Request().Context(), date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

// dateParam reads the optional ?date= query, defaulting to today.
func dateParam(c echo.Context) (time.Time, error) {
	s := c.QueryParam("date")
	if s == "" {
		return time.Now(), nil
	}
	date, err := parseDate(s)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "date must be a YYYY-MM-DD date")
	}
	return date, nil
}
