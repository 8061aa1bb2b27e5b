package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hotelworks/room-engine/internal/dto"
	"github.com/hotelworks/room-engine/internal/models"
	"github.com/hotelworks/room-engine/internal/service"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	svc service.LifecycleService
}

func NewBookingHandler(svc service.LifecycleService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/:id", h.GetBooking)
	bookings.PATCH("/:id", h.UpdateBooking)
	bookings.DELETE("/:id", h.CancelBooking)
	bookings.POST("/:id/check-in", h.CheckIn)
	bookings.POST("/:id/begin-checkout", h.BeginCheckOut)
	bookings.POST("/:id/check-out", h.CheckOut)

	e.GET("/api/v1/rooms/:id/bookings", h.ListRoomBookings)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.GuestID == 0 || req.RoomID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "guest_id and room_id are required")
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in must be a YYYY-MM-DD date")
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be a YYYY-MM-DD date")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), service.CreateBookingInput{
		GuestID:        req.GuestID,
		RoomID:         req.RoomID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumGuests:      req.NumGuests,
		AdvancePayment: req.AdvancePayment,
		Source:         req.Source,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.UpdateBookingInput{
		RoomID:    req.RoomID,
		NumGuests: req.NumGuests,
	}
	if req.CheckIn != nil {
		d, err := parseDate(*req.CheckIn)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "check_in must be a YYYY-MM-DD date")
		}
		input.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, err := parseDate(*req.CheckOut)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "check_out must be a YYYY-MM-DD date")
		}
		input.CheckOut = &d
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), id, input)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CheckIn(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.CheckIn(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) BeginCheckOut(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.BeginCheckOut(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CheckOut(c echo.Context) error {
	id, err := bookingID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.CheckOut(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListRoomBookings(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListBookingsForRoom(c.Request().Context(), uint(roomID), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func bookingID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	return uint(id), nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrGuestNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOverlap),
		errors.Is(err, service.ErrConsistencyConflict),
		errors.Is(err, service.ErrRoomUnderMaintenance):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
