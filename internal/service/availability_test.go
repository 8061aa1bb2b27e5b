package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelworks/room-engine/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow() time.Time {
	return date(2024, 2, 15)
}

func newAvailability(rooms []models.Room, blockedIDs []uint) *availabilityService {
	return &availabilityService{
		roomRepo: &mockRoomRepo{
			listFn: func(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
				return rooms, nil
			},
		},
		bookingRepo: &mockBookingRepo{
			blockedRoomIDsFn: func(ctx context.Context, checkIn, checkOut time.Time) ([]uint, error) {
				return blockedIDs, nil
			},
		},
		now: fixedNow,
	}
}

func TestAvailableRooms_ZeroLengthStayRejected(t *testing.T) {
	svc := newAvailability(nil, nil)

	_, err := svc.AvailableRooms(context.Background(), date(2024, 2, 15), date(2024, 2, 15), models.RoomFilter{})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.AvailableRooms(context.Background(), date(2024, 2, 16), date(2024, 2, 15), models.RoomFilter{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestAvailableRooms_ExcludesBookedRooms(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, RoomNumber: "101", Status: models.RoomVacant},
		{ID: 2, RoomNumber: "102", Status: models.RoomVacant},
		{ID: 3, RoomNumber: "103", Status: models.RoomOccupied},
	}
	svc := newAvailability(rooms, []uint{2, 3})

	got, err := svc.AvailableRooms(context.Background(), date(2024, 2, 20), date(2024, 2, 22), models.RoomFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "101", got[0].RoomNumber)
}

func TestAvailableRooms_OccupiedRoomFreeForFutureRange(t *testing.T) {
	// A currently occupied room with no overlapping booking in the
	// requested range is offered: occupancy today does not block a stay
	// next month.
	rooms := []models.Room{{ID: 1, RoomNumber: "101", Status: models.RoomOccupied}}
	svc := newAvailability(rooms, nil)

	got, err := svc.AvailableRooms(context.Background(), date(2024, 3, 10), date(2024, 3, 12), models.RoomFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAvailableRooms_MaintenanceAlwaysExcluded(t *testing.T) {
	rooms := []models.Room{{ID: 1, RoomNumber: "101", Status: models.RoomMaintenance}}
	svc := newAvailability(rooms, nil)

	got, err := svc.AvailableRooms(context.Background(), date(2024, 3, 10), date(2024, 3, 12), models.RoomFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAvailableRooms_CleaningRoomExcludedForTodayOnly(t *testing.T) {
	rooms := []models.Room{{ID: 1, RoomNumber: "101", Status: models.RoomCleaning}}
	svc := newAvailability(rooms, nil)

	// Range starting today: cleaning room is not ready.
	got, err := svc.AvailableRooms(context.Background(), fixedNow(), date(2024, 2, 17), models.RoomFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	// Future-dated range: turnover will be done by then.
	got, err = svc.AvailableRooms(context.Background(), date(2024, 2, 20), date(2024, 2, 22), models.RoomFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
