package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCanceled  BookingStatus = "Canceled"
)

type Booking struct {
	ID            uuid.UUID
	FlightID      uuid.UUID
	PassengerName string
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookingEvent is published after every successful booking state change.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     uuid.UUID `json:"bookingId"`
	FlightID      uuid.UUID `json:"flightId"`
	PassengerName string    `json:"passengerName"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCanceled  = "booking_canceled"
)
