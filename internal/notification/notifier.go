package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/airline-booking/internal/domain"
	"github.com/Domenick1991/airline-booking/internal/logger"
)

// Notifier tells passengers about booking state changes. Delivery is a log
// record; there is no outbound channel yet.
type Notifier struct {
	log *logger.Logger
}

func NewNotifier(log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Discard()
	}
	return &Notifier{log: log}
}

// HandleMessage decodes a booking event and notifies the passenger. Malformed
// payloads are logged and dropped so one bad message cannot stall the consumer.
func (n *Notifier) HandleMessage(ctx context.Context, payload []byte) error {
	var event domain.BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		n.log.Warn("skipping malformed booking event", "error", err, "size", len(payload))
		return nil
	}
	return n.Notify(ctx, event)
}

func (n *Notifier) Notify(_ context.Context, event domain.BookingEvent) error {
	text, ok := message(event)
	if !ok {
		n.log.Warn("skipping unknown booking event", "type", event.Type, "booking_id", event.BookingID)
		return nil
	}

	n.log.Info("passenger notified",
		"booking_id", event.BookingID,
		"flight_id", event.FlightID,
		"passenger", event.PassengerName,
		"type", event.Type,
		"message", text,
	)
	return nil
}

func message(event domain.BookingEvent) (string, bool) {
	switch event.Type {
	case domain.EventBookingCreated:
		return fmt.Sprintf("Dear %s, your booking %s is pending confirmation", event.PassengerName, event.BookingID), true
	case domain.EventBookingConfirmed:
		return fmt.Sprintf("Dear %s, your booking %s is confirmed", event.PassengerName, event.BookingID), true
	case domain.EventBookingCanceled:
		return fmt.Sprintf("Dear %s, your booking %s was canceled", event.PassengerName, event.BookingID), true
	default:
		return "", false
	}
}
