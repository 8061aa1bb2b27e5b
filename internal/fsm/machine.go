// Package fsm validates booking status transitions against a declarative
// transition table using looplab/fsm.
package fsm

import (
	"context"
	"errors"
	"fmt"

	loopfsm "github.com/looplab/fsm"

	"github.com/hotelworks/room-engine/internal/models"
)

// Event names the lifecycle operations that move a booking between states.
type Event string

const (
	EventCheckIn       Event = "check_in"
	EventBeginCheckOut Event = "begin_checkout"
	EventCheckOut      Event = "check_out"
	EventCancel        Event = "cancel"
)

// events is the full transition table. Completed and cancelled are terminal:
// no event lists them as a source.
var events = loopfsm.Events{
	{
		Name: string(EventCheckIn),
		Src:  []string{string(models.StatusConfirmed)},
		Dst:  string(models.StatusActive),
	},
	{
		Name: string(EventBeginCheckOut),
		Src:  []string{string(models.StatusActive)},
		Dst:  string(models.StatusCheckingOut),
	},
	{
		Name: string(EventCheckOut),
		Src:  []string{string(models.StatusActive), string(models.StatusCheckingOut)},
		Dst:  string(models.StatusCompleted),
	},
	{
		Name: string(EventCancel),
		Src:  []string{string(models.StatusConfirmed), string(models.StatusActive)},
		Dst:  string(models.StatusCancelled),
	},
}

// TransitionError reports an event applied from a state that does not
// permit it.
type TransitionError struct {
	Event   Event
	Current models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from booking status %q", e.Event, e.Current)
}

// Apply checks whether event is legal from the current status and returns
// the destination status. looplab/fsm tracks state internally, so a
// short-lived machine is built per call, seeded with the current status.
func Apply(ctx context.Context, current models.BookingStatus, event Event) (models.BookingStatus, error) {
	machine := loopfsm.NewFSM(string(current), events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return "", &TransitionError{Event: event, Current: current}
		}
		return "", err
	}

	return models.BookingStatus(machine.Current()), nil
}
