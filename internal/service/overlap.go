package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/models"
	"github.com/hotelworks/room-engine/internal/repository"
)

// OverlapChecker answers whether a candidate date range for a room collides
// with any blocking (confirmed or active) booking. Absence of bookings is
// no overlap.
type OverlapChecker struct {
	bookings repository.BookingRepository
}

func NewOverlapChecker(bookings repository.BookingRepository) *OverlapChecker {
	return &OverlapChecker{bookings: bookings}
}

// Overlaps runs the interval check inside tx when given one, so the
// orchestrator's check-then-write sequence stays under the room row lock.
// excludeID skips the booking's own row when re-validating an update.
func (c *OverlapChecker) Overlaps(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	if tx == nil {
		tx = c.bookings.GetDB()
	}
	conflicts, err := c.bookings.FindOverlapping(ctx, tx, roomID, models.TruncateDate(checkIn), models.TruncateDate(checkOut), excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}
