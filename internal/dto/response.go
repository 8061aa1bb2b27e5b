package dto

import (
	"time"

	"github.com/hotelworks/room-engine/internal/models"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID             uint                 `json:"id"`
	ReferenceCode  string               `json:"reference_code"`
	GuestID        uint                 `json:"guest_id"`
	RoomID         uint                 `json:"room_id"`
	CheckIn        string               `json:"check_in"`
	CheckOut       string               `json:"check_out"`
	Nights         int                  `json:"nights"`
	NumGuests      int                  `json:"num_guests"`
	Status         models.BookingStatus `json:"status"`
	TotalPrice     float64              `json:"total_price"`
	AdvancePayment float64              `json:"advance_payment"`
	ActualCheckIn  *time.Time           `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time           `json:"actual_check_out,omitempty"`
	Source         string               `json:"source,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

type RoomResponse struct {
	ID         uint              `json:"id"`
	RoomNumber string            `json:"room_number"`
	Floor      int               `json:"floor"`
	RoomTypeID uint              `json:"room_type_id"`
	RoomType   string            `json:"room_type,omitempty"`
	BasePrice  float64           `json:"base_price"`
	Status     models.RoomStatus `json:"status"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		ReferenceCode:  b.ReferenceCode,
		GuestID:        b.GuestID,
		RoomID:         b.RoomID,
		CheckIn:        b.CheckInDate.Format(dateLayout),
		CheckOut:       b.CheckOutDate.Format(dateLayout),
		Nights:         b.Nights(),
		NumGuests:      b.NumGuests,
		Status:         b.Status,
		TotalPrice:     b.TotalPrice,
		AdvancePayment: b.AdvancePayment,
		ActualCheckIn:  b.ActualCheckIn,
		ActualCheckOut: b.ActualCheckOut,
		Source:         b.Source,
		CreatedAt:      b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

func ToRoomResponse(r *models.Room) RoomResponse {
	resp := RoomResponse{
		ID:         r.ID,
		RoomNumber: r.RoomNumber,
		Floor:      r.Floor,
		RoomTypeID: r.RoomTypeID,
		BasePrice:  r.BasePrice,
		Status:     r.Status,
	}
	if r.RoomType != nil {
		resp.RoomType = r.RoomType.Name
	}
	return resp
}

func ToRoomResponses(rooms []models.Room) []RoomResponse {
	resp := make([]RoomResponse, len(rooms))
	for i := range rooms {
		resp[i] = ToRoomResponse(&rooms[i])
	}
	return resp
}
