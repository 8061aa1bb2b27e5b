package dto

// Dates in requests are civil dates, formatted YYYY-MM-DD.

type CreateBookingRequest struct {
	GuestID        uint    `json:"guest_id"`
	RoomID         uint    `json:"room_id"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	NumGuests      int     `json:"num_guests"`
	AdvancePayment float64 `json:"advance_payment"`
	Source         string  `json:"source"`
}

type UpdateBookingRequest struct {
	RoomID    *uint   `json:"room_id,omitempty"`
	CheckIn   *string `json:"check_in,omitempty"`
	CheckOut  *string `json:"check_out,omitempty"`
	NumGuests *int    `json:"num_guests,omitempty"`
}
