package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airline-booking/internal/domain"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// TransitionError reports a status change rejected by the transition table.
type TransitionError struct {
	Current domain.BookingStatus
	Target  domain.BookingStatus
}

func (e *TransitionError) Error() string {
	target := strings.ToLower(string(e.Target))
	if e.Current == e.Target {
		return fmt.Sprintf("booking is already %s", target)
	}
	return fmt.Sprintf("booking cannot be %s: current status is %s", target, e.Current)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
