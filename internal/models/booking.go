package models

import "time"

type BookingStatus string

const (
	StatusConfirmed   BookingStatus = "confirmed"
	StatusActive      BookingStatus = "active"
	StatusCheckingOut BookingStatus = "checking_out"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
)

// BlockingStatuses are the booking states that claim a room's date range.
// Confirmed and active bookings block identically; the distinction only
// matters for the check-in/check-out workflow.
var BlockingStatuses = []BookingStatus{StatusConfirmed, StatusActive}

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Booking struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ReferenceCode  string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"reference_code"`
	GuestID        uint          `gorm:"not null;index" json:"guest_id"`
	RoomID         uint          `gorm:"not null;index" json:"room_id"`
	CheckInDate    time.Time     `gorm:"type:date;not null" json:"check_in_date"`
	CheckOutDate   time.Time     `gorm:"type:date;not null" json:"check_out_date"`
	NumGuests      int           `gorm:"not null;default:1" json:"num_guests"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	TotalPrice     float64       `json:"total_price"`
	AdvancePayment float64       `json:"advance_payment"`
	ActualCheckIn  *time.Time    `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time    `json:"actual_check_out,omitempty"`
	Source         string        `gorm:"type:varchar(30);default:'walk_in'" json:"source"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`

	Room  *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Guest *Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
}

// Nights is the length of the stay under [check_in, check_out) semantics.
func (b *Booking) Nights() int {
	return int(TruncateDate(b.CheckOutDate).Sub(TruncateDate(b.CheckInDate)).Hours() / 24)
}

// Covers reports whether the booking's stay includes the given date.
// The check-out date itself is excluded.
func (b *Booking) Covers(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(TruncateDate(b.CheckInDate)) && d.Before(TruncateDate(b.CheckOutDate))
}

// RangesOverlap reports whether two half-open date ranges [a1,a2) and
// [b1,b2) intersect. Back-to-back stays (a2 == b1) do not overlap.
func RangesOverlap(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// TruncateDate drops the time-of-day portion, normalizing to UTC midnight.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
