package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/models"
)

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	createFn        func(ctx context.Context, room *models.Room) error
	findByIDFn      func(ctx context.Context, id uint) (*models.Room, error)
	listFn          func(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	updateStatusFn  func(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error
	countByStatusFn func(ctx context.Context) (map[models.RoomStatus]int64, error)
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	return m.createFn(ctx, room)
}
func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRoomRepo) List(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	return m.listFn(ctx, filter)
}
func (m *mockRoomRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, roomID, status)
	}
	return nil
}
func (m *mockRoomRepo) CountByStatus(ctx context.Context) (map[models.RoomStatus]int64, error) {
	return m.countByStatusFn(ctx)
}
func (m *mockRoomRepo) GetDB() *gorm.DB { return nil }

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	findOverlappingFn func(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Booking, error)
	blockedRoomIDsFn  func(ctx context.Context, checkIn, checkOut time.Time) ([]uint, error)
	arrivalsFn        func(ctx context.Context, date time.Time) ([]models.Booking, error)
	departuresFn      func(ctx context.Context, date time.Time) ([]models.Booking, error)
	activeCoveringFn  func(ctx context.Context, date time.Time) ([]models.Booking, error)
	countByStatusFn   func(ctx context.Context, status models.BookingStatus) (int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) ListForRoom(ctx context.Context, roomID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Booking, error) {
	if m.findOverlappingFn != nil {
		return m.findOverlappingFn(ctx, tx, roomID, checkIn, checkOut, excludeID)
	}
	return nil, nil
}
func (m *mockBookingRepo) FindBlockingCovering(ctx context.Context, tx *gorm.DB, roomID uint, date time.Time, excludeID uint) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) BlockedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uint, error) {
	if m.blockedRoomIDsFn != nil {
		return m.blockedRoomIDsFn(ctx, checkIn, checkOut)
	}
	return nil, nil
}
func (m *mockBookingRepo) Save(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) Arrivals(ctx context.Context, date time.Time) ([]models.Booking, error) {
	if m.arrivalsFn != nil {
		return m.arrivalsFn(ctx, date)
	}
	return nil, nil
}
func (m *mockBookingRepo) Departures(ctx context.Context, date time.Time) ([]models.Booking, error) {
	if m.departuresFn != nil {
		return m.departuresFn(ctx, date)
	}
	return nil, nil
}
func (m *mockBookingRepo) ActiveCovering(ctx context.Context, date time.Time) ([]models.Booking, error) {
	if m.activeCoveringFn != nil {
		return m.activeCoveringFn(ctx, date)
	}
	return nil, nil
}
func (m *mockBookingRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	if m.countByStatusFn != nil {
		return m.countByStatusFn(ctx, status)
	}
	return 0, nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }
