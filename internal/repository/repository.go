package repository

import (
	"time"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/google/uuid"
)

type FlightRepository interface {
	FindByID(id uuid.UUID) (domain.Flight, bool)
	Search(origin, destination string, date time.Time) []domain.Flight
}

type BookingRepository interface {
	Create(flightID uuid.UUID, passengerName string) domain.Booking
	FindByID(id uuid.UUID) (domain.Booking, bool)
	TryTransition(id uuid.UUID, target domain.BookingStatus) bool
	CompareAndTransition(id uuid.UUID, expected, target domain.BookingStatus) (domain.Booking, bool)
	CanTransition(from, to domain.BookingStatus) bool
}
