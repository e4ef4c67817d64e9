package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/Domenick1991/airline-booking/internal/logger"
	"github.com/Domenick1991/airline-booking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	failures           FailurePolicy
	producer           Publisher
	bookingTopic       string
	notificationsTopic string
	log                *logger.Logger
	now                func() time.Time
}

type CreateBookingInput struct {
	FlightID      uuid.UUID
	PassengerName string
}

type BookingServiceOption func(*BookingService)

func WithFailurePolicy(p FailurePolicy) BookingServiceOption {
	return func(s *BookingService) {
		if p != nil {
			s.failures = p
		}
	}
}

// WithPublisher enables booking events on topic.
func WithPublisher(p Publisher, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.bookingTopic = topic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(l *logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// NewBookingService never fails confirm or cancel unless a FailurePolicy is given.
func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		failures: NeverFail(),
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	s.log.Info("creating booking", "passenger_name", input.PassengerName, "flight_id", input.FlightID)

	if _, ok := s.flights.FindByID(input.FlightID); !ok {
		s.log.Error("flight not found when creating booking", "flight_id", input.FlightID, "passenger_name", input.PassengerName)
		return nil, fmt.Errorf("create booking for flight %s: %w", input.FlightID, ErrFlightNotFound)
	}

	booking := s.bookings.Create(input.FlightID, input.PassengerName)
	s.log.Info("booking created", "booking_id", booking.ID, "status", booking.Status, "flight_id", booking.FlightID)

	s.publish(ctx, domain.EventBookingCreated, booking)
	return &booking, nil
}

func (s *BookingService) GetBooking(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.log.Info("retrieving booking", "booking_id", id)

	booking, ok := s.bookings.FindByID(id)
	if !ok {
		s.log.Warn("booking not found", "booking_id", id)
		return nil, fmt.Errorf("get booking %s: %w", id, ErrBookingNotFound)
	}
	return &booking, nil
}

func (s *BookingService) ConfirmBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.log.Info("confirming booking", "booking_id", id)

	updated, err := s.transition(ctx, id, OperationConfirm, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.log.Info("booking confirmed", "booking_id", id)

	s.publish(ctx, domain.EventBookingConfirmed, *updated)
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.log.Info("canceling booking", "booking_id", id)

	updated, err := s.transition(ctx, id, OperationCancel, domain.BookingStatusCanceled)
	if err != nil {
		return nil, err
	}
	s.log.Info("booking canceled", "booking_id", id)

	s.publish(ctx, domain.EventBookingCanceled, *updated)
	return updated, nil
}

// operationAllows applies on top of the ledger's table, whichever one it uses: only a
// Pending booking can be confirmed and a Canceled one cannot be canceled again.
func operationAllows(current, target domain.BookingStatus) bool {
	switch target {
	case domain.BookingStatusConfirmed:
		return current == domain.BookingStatusPending
	case domain.BookingStatusCanceled:
		return current != domain.BookingStatusCanceled
	default:
		return false
	}
}

// transition checks the current status against the ledger's table, consults
// the failure policy and then swaps the status only if nobody changed it in
// the meantime.
func (s *BookingService) transition(ctx context.Context, id uuid.UUID, op string, target domain.BookingStatus) (*domain.Booking, error) {
	current, ok := s.bookings.FindByID(id)
	if !ok {
		s.log.Warn("booking not found", "booking_id", id)
		return nil, fmt.Errorf("%s booking %s: %w", op, id, ErrBookingNotFound)
	}

	if !operationAllows(current.Status, target) || !s.bookings.CanTransition(current.Status, target) {
		s.log.Error("invalid booking status transition", "booking_id", id, "operation", op, "status", current.Status)
		return nil, fmt.Errorf("%s booking %s: %w", op, id, &TransitionError{Current: current.Status, Target: target})
	}

	if err := s.failures.Decide(ctx, Operation{Name: op, BookingID: id}); err != nil {
		s.log.Error("simulated processing failure", "booking_id", id, "operation", op, "error", err)
		return nil, fmt.Errorf("%s booking %s: %w", op, id, err)
	}

	updated, ok := s.bookings.CompareAndTransition(id, current.Status, target)
	if !ok {
		if updated.ID == uuid.Nil {
			return nil, fmt.Errorf("%s booking %s: %w", op, id, ErrBookingNotFound)
		}
		s.log.Warn("booking changed concurrently", "booking_id", id, "operation", op, "expected", current.Status, "status", updated.Status)
		return nil, fmt.Errorf("%s booking %s: %w", op, id, &TransitionError{Current: updated.Status, Target: target})
	}
	return &updated, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := domain.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		FlightID:      booking.FlightID,
		PassengerName: booking.PassengerName,
		Status:        string(booking.Status),
		OccurredAt:    s.now().UTC(),
	}
	key := booking.ID.String()

	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.Warn("failed to publish booking event", "event", eventType, "booking_id", booking.ID, "error", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.Warn("failed to publish notification", "event", eventType, "booking_id", booking.ID, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
