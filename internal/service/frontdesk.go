package service

import (
	"context"
	"log"
	"time"

	"github.com/hotelworks/room-engine/internal/models"
	"github.com/hotelworks/room-engine/internal/repository"
	"github.com/hotelworks/room-engine/pkg/cache"
)

const statsCacheKey = "frontdesk:stats"

// FrontDeskStats is the dashboard snapshot: room counts by status plus
// today's movement figures.
type FrontDeskStats struct {
	TotalRooms      int64   `json:"total_rooms"`
	Occupied        int64   `json:"occupied"`
	Vacant          int64   `json:"vacant"`
	Cleaning        int64   `json:"cleaning"`
	Maintenance     int64   `json:"maintenance"`
	TodayArrivals   int     `json:"today_arrivals"`
	TodayDepartures int     `json:"today_departures"`
	ActiveBookings  int64   `json:"active_bookings"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// GuestStay is one row of the in-house guest list.
type GuestStay struct {
	BookingID     uint      `json:"booking_id"`
	ReferenceCode string    `json:"reference_code"`
	GuestName     string    `json:"guest_name"`
	RoomNumber    string    `json:"room_number"`
	CheckInDate   time.Time `json:"check_in_date"`
	CheckOutDate  time.Time `json:"check_out_date"`
	NumGuests     int       `json:"num_guests"`
}

// FrontDeskService serves read-only projections over room and booking
// snapshots. No call here mutates anything.
type FrontDeskService interface {
	Stats(ctx context.Context) (*FrontDeskStats, error)
	CurrentGuests(ctx context.Context) ([]GuestStay, error)
	Arrivals(ctx context.Context, date time.Time) ([]models.Booking, error)
	Departures(ctx context.Context, date time.Time) ([]models.Booking, error)
}

type frontDeskService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	cache       *cache.Cache // nil = compute every call
	now         func() time.Time
}

func NewFrontDeskService(roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository, statsCache *cache.Cache) FrontDeskService {
	return &frontDeskService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cache:       statsCache,
		now:         time.Now,
	}
}

func (s *frontDeskService) Stats(ctx context.Context) (*FrontDeskStats, error) {
	if s.cache != nil {
		var cached FrontDeskStats
		hit, err := s.cache.GetJSON(ctx, statsCacheKey, &cached)
		if err != nil {
			log.Printf("[FrontDesk] stats cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	counts, err := s.roomRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	today := models.TruncateDate(s.now())
	arrivals, err := s.bookingRepo.Arrivals(ctx, today)
	if err != nil {
		return nil, err
	}
	departures, err := s.bookingRepo.Departures(ctx, today)
	if err != nil {
		return nil, err
	}
	active, err := s.bookingRepo.CountByStatus(ctx, models.StatusActive)
	if err != nil {
		return nil, err
	}

	stats := &FrontDeskStats{
		Occupied:        counts[models.RoomOccupied],
		Vacant:          counts[models.RoomVacant],
		Cleaning:        counts[models.RoomCleaning],
		Maintenance:     counts[models.RoomMaintenance],
		TodayArrivals:   len(arrivals),
		TodayDepartures: len(departures),
		ActiveBookings:  active,
	}
	for _, n := range counts {
		stats.TotalRooms += n
	}
	if stats.TotalRooms > 0 {
		stats.OccupancyRate = float64(stats.Occupied) / float64(stats.TotalRooms) * 100
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats); err != nil {
			log.Printf("[FrontDesk] stats cache write failed: %v", err)
		}
	}
	return stats, nil
}

func (s *frontDeskService) CurrentGuests(ctx context.Context) ([]GuestStay, error) {
	bookings, err := s.bookingRepo.ActiveCovering(ctx, s.now())
	if err != nil {
		return nil, err
	}

	stays := make([]GuestStay, 0, len(bookings))
	for _, b := range bookings {
		stay := GuestStay{
			BookingID:     b.ID,
			ReferenceCode: b.ReferenceCode,
			CheckInDate:   b.CheckInDate,
			CheckOutDate:  b.CheckOutDate,
			NumGuests:     b.NumGuests,
		}
		if b.Guest != nil {
			stay.GuestName = b.Guest.FullName
		}
		if b.Room != nil {
			stay.RoomNumber = b.Room.RoomNumber
		}
		stays = append(stays, stay)
	}
	return stays, nil
}

func (s *frontDeskService) Arrivals(ctx context.Context, date time.Time) ([]models.Booking, error) {
	return s.bookingRepo.Arrivals(ctx, date)
}

func (s *frontDeskService) Departures(ctx context.Context, date time.Time) ([]models.Booking, error) {
	return s.bookingRepo.Departures(ctx, date)
}
