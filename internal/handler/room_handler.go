package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/dto"
	"github.com/hotelworks/room-engine/internal/models"
	"github.com/hotelworks/room-engine/internal/repository"
	"github.com/hotelworks/room-engine/internal/service"
)

type RoomHandler struct {
	availability service.AvailabilityService
	roomRepo     repository.RoomRepository
}

func NewRoomHandler(availability service.AvailabilityService, roomRepo repository.RoomRepository) *RoomHandler {
	return &RoomHandler{availability: availability, roomRepo: roomRepo}
}

func (h *RoomHandler) RegisterRoutes(e *echo.Echo) {
	rooms := e.Group("/api/v1/rooms")
	rooms.GET("", h.ListRooms)
	rooms.GET("/available", h.AvailableRooms)
	rooms.GET("/:id", h.GetRoom)
}

func (h *RoomHandler) ListRooms(c echo.Context) error {
	filter, err := roomFilter(c)
	if err != nil {
		return err
	}

	rooms, err := h.roomRepo.List(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToRoomResponses(rooms))
}

func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid room id")
	}

	room, err := h.roomRepo.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "room not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.ToRoomResponse(room)
	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) AvailableRooms(c echo.Context) error {
	checkIn, err := parseDate(c.QueryParam("check_in"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_in must be a YYYY-MM-DD date")
	}
	checkOut, err := parseDate(c.QueryParam("check_out"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "check_out must be a YYYY-MM-DD date")
	}

	filter, err := roomFilter(c)
	if err != nil {
		return err
	}

	rooms, err := h.availability.AvailableRooms(c.Request().Context(), checkIn, checkOut, filter)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToRoomResponses(rooms))
}

func roomFilter(c echo.Context) (models.RoomFilter, error) {
	var filter models.RoomFilter

	if s := c.QueryParam("status"); s != "" {
		rs := models.RoomStatus(s)
		filter.Status = &rs
	}
	if s := c.QueryParam("room_type_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid room_type_id")
		}
		typeID := uint(id)
		filter.RoomTypeID = &typeID
	}
	if s := c.QueryParam("floor"); s != "" {
		floor, err := strconv.Atoi(s)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "invalid floor")
		}
		filter.Floor = &floor
	}
	filter.Search = c.QueryParam("search")

	return filter, nil
}
