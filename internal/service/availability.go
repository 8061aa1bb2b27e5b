package service

import (
	"context"
	"time"

	"github.com/hotelworks/room-engine/internal/models"
	"github.com/hotelworks/room-engine/internal/repository"
)

type AvailabilityService interface {
	AvailableRooms(ctx context.Context, checkIn, checkOut time.Time, filter models.RoomFilter) ([]models.Room, error)
}

type availabilityService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	now         func() time.Time
}

func NewAvailabilityService(roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository) AvailabilityService {
	return &availabilityService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

// AvailableRooms returns the rooms free for the requested range. Rooms in
// maintenance are never offered. Rooms in cleaning are offered for
// future-dated ranges only: cleaning is a transient turnover state, so a
// room can be booked ahead while being cleaned, but not for a stay that
// starts today.
func (s *availabilityService) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time, filter models.RoomFilter) ([]models.Room, error) {
	in := models.TruncateDate(checkIn)
	out := models.TruncateDate(checkOut)
	if !out.After(in) {
		return nil, ErrInvalidRange
	}

	filter.Status = nil // availability derives its own status rules
	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	blockedIDs, err := s.bookingRepo.BlockedRoomIDs(ctx, in, out)
	if err != nil {
		return nil, err
	}
	blocked := make(map[uint]struct{}, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = struct{}{}
	}

	startsNow := !in.After(models.TruncateDate(s.now()))

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Status == models.RoomMaintenance {
			continue
		}
		if room.Status == models.RoomCleaning && startsNow {
			continue
		}
		if _, taken := blocked[room.ID]; taken {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}
