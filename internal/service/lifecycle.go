package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/hotelworks/room-engine/internal/fsm"
	"github.com/hotelworks/room-engine/internal/models"
	"github.com/hotelworks/room-engine/internal/repository"
	"github.com/hotelworks/room-engine/pkg/rabbitmq"
)

const txRetryAttempts = 3

type CreateBookingInput struct {
	GuestID        uint
	RoomID         uint
	CheckIn        time.Time
	CheckOut       time.Time
	NumGuests      int
	AdvancePayment float64
	Source         string
}

type UpdateBookingInput struct {
	RoomID    *uint
	CheckIn   *time.Time
	CheckOut  *time.Time
	NumGuests *int
}

// LifecycleService orchestrates the compound booking/room operations. It is
// the only writer of room occupancy status: every operation locks the target
// room row and applies the booking and room writes in one transaction.
type LifecycleService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error)
	BeginCheckOut(ctx context.Context, bookingID uint) (*models.Booking, error)
	CheckOut(ctx context.Context, bookingID uint) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID uint, input UpdateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookingsForRoom(ctx context.Context, roomID uint, status *models.BookingStatus) ([]models.Booking, error)
}

type lifecycleService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	guestRepo   repository.GuestRepository
	checker     *OverlapChecker
	publisher   *rabbitmq.Publisher
	now         func() time.Time
}

func NewLifecycleService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	guestRepo repository.GuestRepository,
	checker *OverlapChecker,
	publisher *rabbitmq.Publisher,
) LifecycleService {
	return &lifecycleService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		guestRepo:   guestRepo,
		checker:     checker,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *lifecycleService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	in := models.TruncateDate(input.CheckIn)
	out := models.TruncateDate(input.CheckOut)
	if !out.After(in) {
		return nil, ErrInvalidRange
	}

	if _, err := s.guestRepo.FindByID(ctx, input.GuestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	var result *models.Booking

	err := s.runInTx(ctx, func(tx *gorm.DB) error {
		// 1. Lock the room row — serializes concurrent attempts on this room
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, input.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		if room.Status == models.RoomMaintenance {
			return ErrRoomUnderMaintenance
		}

		// 2. Overlap check under the lock
		taken, err := s.checker.Overlaps(ctx, tx, room.ID, in, out, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrOverlap
		}

		// 3. Create the booking
		booking := &models.Booking{
			ReferenceCode:  uuid.NewString(),
			GuestID:        input.GuestID,
			RoomID:         room.ID,
			CheckInDate:    in,
			CheckOutDate:   out,
			NumGuests:      input.NumGuests,
			Status:         models.StatusConfirmed,
			AdvancePayment: input.AdvancePayment,
			Source:         input.Source,
		}
		if booking.NumGuests <= 0 {
			booking.NumGuests = 1
		}
		booking.TotalPrice = float64(booking.Nights()) * room.BasePrice

		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}

		// 4. A stay that covers today claims the room immediately
		if err := s.rederiveRoomStatus(ctx, tx, room, 0); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", result)
	return result, nil
}

func (s *lifecycleService) CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.transition(ctx, bookingID, fsm.EventCheckIn, func(tx *gorm.DB, b *models.Booking, room *models.Room) error {
		now := s.now()
		b.ActualCheckIn = &now
		if room.Status != models.RoomOccupied {
			room.Status = models.RoomOccupied
			return s.roomRepo.UpdateStatus(ctx, tx, room.ID, models.RoomOccupied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish("booking.checked_in", booking)
	return booking, nil
}

func (s *lifecycleService) BeginCheckOut(ctx context.Context, bookingID uint) (*models.Booking, error) {
	// Room stays occupied until check-out completes.
	return s.transition(ctx, bookingID, fsm.EventBeginCheckOut, nil)
}

func (s *lifecycleService) CheckOut(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.transition(ctx, bookingID, fsm.EventCheckOut, func(tx *gorm.DB, b *models.Booking, room *models.Room) error {
		now := s.now()
		b.ActualCheckOut = &now
		return s.rederiveRoomStatus(ctx, tx, room, b.ID)
	})
	if err != nil {
		return nil, err
	}
	s.publish("booking.checked_out", booking)
	return booking, nil
}

func (s *lifecycleService) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	booking, err := s.transition(ctx, bookingID, fsm.EventCancel, func(tx *gorm.DB, b *models.Booking, room *models.Room) error {
		return s.rederiveRoomStatus(ctx, tx, room, b.ID)
	})
	if err != nil {
		return nil, err
	}
	s.publish("booking.cancelled", booking)
	return booking, nil
}

// transition executes one state-machine event inside a locked transaction.
// after runs once the new status is validated, before the booking is saved,
// and carries the room-side effect of the event.
func (s *lifecycleService) transition(
	ctx context.Context,
	bookingID uint,
	event fsm.Event,
	after func(tx *gorm.DB, b *models.Booking, room *models.Room) error,
) (*models.Booking, error) {
	var result *models.Booking

	err := s.runInTx(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDTx(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, booking.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		// Re-read under the lock: a concurrent operation may have committed
		// a transition between the first read and lock acquisition.
		booking, err = s.bookingRepo.FindByIDTx(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if booking.RoomID != room.ID {
			// Moved concurrently, the lock covers the wrong room.
			return fmt.Errorf("%w: booking %d changed rooms mid-operation", ErrConsistencyConflict, booking.ID)
		}

		next, err := fsm.Apply(ctx, booking.Status, event)
		if err != nil {
			var transitionErr *fsm.TransitionError
			if errors.As(err, &transitionErr) {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, transitionErr)
			}
			return err
		}
		booking.Status = next

		if after != nil {
			if err := after(tx, booking, room); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *lifecycleService) UpdateBooking(ctx context.Context, bookingID uint, input UpdateBookingInput) (*models.Booking, error) {
	var result *models.Booking

	err := s.runInTx(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDTx(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		oldRoomID := booking.RoomID
		newRoomID := oldRoomID
		if input.RoomID != nil && *input.RoomID != oldRoomID {
			newRoomID = *input.RoomID
		}

		oldRoom, newRoom, err := s.lockRooms(ctx, tx, oldRoomID, newRoomID)
		if err != nil {
			return err
		}

		// Re-read under the locks: a concurrent check-in or cancel may have
		// committed between the first read and lock acquisition.
		booking, err = s.bookingRepo.FindByIDTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if booking.RoomID != oldRoomID {
			// Moved concurrently, the locks cover the wrong rooms.
			return fmt.Errorf("%w: booking %d changed rooms mid-update", ErrConsistencyConflict, booking.ID)
		}

		if booking.Status != models.StatusConfirmed && booking.Status != models.StatusActive {
			return fmt.Errorf("%w: booking %d is %s", ErrInvalidTransition, booking.ID, booking.Status)
		}
		// The room reference is frozen once the guest has checked in.
		if newRoomID != oldRoomID && booking.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: cannot move an active booking to another room", ErrInvalidTransition)
		}

		in := models.TruncateDate(booking.CheckInDate)
		out := models.TruncateDate(booking.CheckOutDate)
		if input.CheckIn != nil {
			in = models.TruncateDate(*input.CheckIn)
		}
		if input.CheckOut != nil {
			out = models.TruncateDate(*input.CheckOut)
		}
		if !out.After(in) {
			return ErrInvalidRange
		}

		if newRoomID != oldRoomID && newRoom.Status == models.RoomMaintenance {
			return ErrRoomUnderMaintenance
		}

		taken, err := s.checker.Overlaps(ctx, tx, newRoomID, in, out, booking.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrOverlap
		}

		booking.RoomID = newRoomID
		booking.CheckInDate = in
		booking.CheckOutDate = out
		if input.NumGuests != nil {
			booking.NumGuests = *input.NumGuests
		}
		booking.TotalPrice = float64(booking.Nights()) * newRoom.BasePrice

		if err := s.bookingRepo.Save(ctx, tx, booking); err != nil {
			return err
		}

		if err := s.rederiveRoomStatus(ctx, tx, newRoom, 0); err != nil {
			return err
		}
		if oldRoomID != newRoomID {
			if err := s.rederiveRoomStatus(ctx, tx, oldRoom, 0); err != nil {
				return err
			}
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.updated", result)
	return result, nil
}

func (s *lifecycleService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *lifecycleService) ListBookingsForRoom(ctx context.Context, roomID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.ListForRoom(ctx, roomID, status)
}

// rederiveRoomStatus recomputes occupancy from the remaining blocking
// bookings: occupied iff one of them covers today. excludeID skips a
// booking just moved to a terminal state (its row may not reflect the new
// status yet within this transaction's statement ordering). Cleaning and
// maintenance are housekeeping-owned and are never downgraded to vacant
// here, though a covering booking always wins as occupied.
func (s *lifecycleService) rederiveRoomStatus(ctx context.Context, tx *gorm.DB, room *models.Room, excludeID uint) error {
	covering, err := s.bookingRepo.FindBlockingCovering(ctx, tx, room.ID, s.now(), excludeID)
	if err != nil {
		return err
	}

	target := models.RoomVacant
	if len(covering) > 0 {
		target = models.RoomOccupied
	}
	if target == models.RoomVacant &&
		(room.Status == models.RoomCleaning || room.Status == models.RoomMaintenance) {
		return nil
	}
	if room.Status == target {
		return nil
	}

	room.Status = target
	return s.roomRepo.UpdateStatus(ctx, tx, room.ID, target)
}

// lockRooms acquires FOR UPDATE locks on one or two rooms in ascending id
// order, so two concurrent room moves cannot deadlock on each other.
func (s *lifecycleService) lockRooms(ctx context.Context, tx *gorm.DB, oldID, newID uint) (oldRoom, newRoom *models.Room, err error) {
	lock := func(id uint) (*models.Room, error) {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		return room, nil
	}

	if oldID == newID {
		room, err := lock(oldID)
		return room, room, err
	}

	first, second := oldID, newID
	if second < first {
		first, second = second, first
	}
	a, err := lock(first)
	if err != nil {
		return nil, nil, err
	}
	b, err := lock(second)
	if err != nil {
		return nil, nil, err
	}
	if first == oldID {
		return a, b, nil
	}
	return b, a, nil
}

// runInTx runs fn in a transaction, retrying a bounded number of times on
// Postgres serialization failures and deadlocks before reporting a
// consistency conflict. Domain errors roll back and surface immediately.
func (s *lifecycleService) runInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txRetryAttempts; attempt++ {
		err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(fn)
		if isExclusionViolation(err) {
			// The btree_gist backstop caught a double booking that slipped
			// past the row-lock path.
			return fmt.Errorf("%w: %v", ErrOverlap, err)
		}
		if !isRetryableTxError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 50 * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %v", ErrConsistencyConflict, err)
}

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isExclusionViolation reports whether Postgres rejected a write through an
// EXCLUDE constraint (SQLSTATE 23P01), i.e. the overlap backstop fired.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func (s *lifecycleService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		log.Printf("[Lifecycle] publish %s for booking %d failed: %v", routingKey, booking.ID, err)
	}
}
