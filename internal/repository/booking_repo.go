package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/models"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	ListForRoom(ctx context.Context, roomID uint, status *models.BookingStatus) ([]models.Booking, error)
	FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Booking, error)
	FindBlockingCovering(ctx context.Context, tx *gorm.DB, roomID uint, date time.Time, excludeID uint) ([]models.Booking, error)
	BlockedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uint, error)
	Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	Arrivals(ctx context.Context, date time.Time) ([]models.Booking, error)
	Departures(ctx context.Context, date time.Time) ([]models.Booking, error)
	ActiveCovering(ctx context.Context, date time.Time) ([]models.Booking, error)
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDTx reads the booking through the given transaction, so a caller
// holding the room row lock observes the latest committed status.
func (r *bookingRepository) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListForRoom(ctx context.Context, roomID uint, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Where("room_id = ?", roomID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("check_in_date ASC, id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOverlapping returns blocking bookings for the room whose half-open
// [check_in, check_out) range intersects the candidate range. A booking
// whose check-out equals the candidate check-in does not intersect.
func (r *bookingRepository) FindOverlapping(ctx context.Context, tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	q := tx.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, models.BlockingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("check_in_date ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindBlockingCovering returns blocking bookings whose stay includes the
// given date. Used to re-derive room status after a terminal transition.
func (r *bookingRepository) FindBlockingCovering(ctx context.Context, tx *gorm.DB, roomID uint, date time.Time, excludeID uint) ([]models.Booking, error) {
	day := models.TruncateDate(date)
	q := tx.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, models.BlockingStatuses).
		Where("check_in_date <= ? AND check_out_date > ?", day, day)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// BlockedRoomIDs returns the ids of rooms with at least one blocking
// booking intersecting the range. One query serves the whole availability
// scan instead of a per-room overlap probe.
func (r *bookingRepository) BlockedRoomIDs(ctx context.Context, checkIn, checkOut time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Distinct("room_id").
		Where("status IN ?", models.BlockingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *bookingRepository) Save(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Save(booking).Error
}

func (r *bookingRepository) Arrivals(ctx context.Context, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").Preload("Guest").
		Where("check_in_date = ? AND status IN ?", models.TruncateDate(date),
			[]models.BookingStatus{models.StatusConfirmed, models.StatusActive}).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Departures(ctx context.Context, date time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").Preload("Guest").
		Where("check_out_date = ? AND status IN ?", models.TruncateDate(date),
			[]models.BookingStatus{models.StatusActive, models.StatusCheckingOut, models.StatusCompleted}).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ActiveCovering returns checked-in bookings whose stay includes the date,
// with room and guest preloaded for the front-desk guest list.
func (r *bookingRepository) ActiveCovering(ctx context.Context, date time.Time) ([]models.Booking, error) {
	day := models.TruncateDate(date)
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").Preload("Guest").
		Where("status IN ? AND check_in_date <= ? AND check_out_date > ?",
			[]models.BookingStatus{models.StatusActive, models.StatusCheckingOut}, day, day).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
