package service

import "errors"

var (
	ErrInvalidRange         = errors.New("check-out date must be after check-in date")
	ErrOverlap              = errors.New("room is already booked for an overlapping date range")
	ErrInvalidTransition    = errors.New("operation is not valid for the booking's current status")
	ErrRoomNotFound         = errors.New("room not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrGuestNotFound        = errors.New("guest not found")
	ErrRoomUnderMaintenance = errors.New("room is under maintenance")
	ErrConsistencyConflict  = errors.New("conflicting concurrent update, retries exhausted")
)
