package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	basekafka "bookmyspot/internal/kafka"
	"bookmyspot/internal/models"
)

// Writer is the generic publish surface this domain producer sits on.
type Writer interface {
	Publish(topic, key string, value []byte) error
}

// Producer publishes booking lifecycle events.
type Producer struct {
	Writer Writer
}

func NewProducer(writer Writer) *Producer {
	return &Producer{Writer: writer}
}

type statusChangedEvent struct {
	BookingRef string               `json:"booking_ref"`
	From       models.BookingStatus `json:"from"`
	To         models.BookingStatus `json:"to"`
	Actor      models.Actor         `json:"actor"`
	Reason     string               `json:"reason,omitempty"`
	At         time.Time            `json:"at"`
}

// PublishBookingCreated streams the freshly created booking.
func (p *Producer) PublishBookingCreated(booking models.Booking) error {
	msgBytes, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking %s: %w", booking.BookingRef, err)
	}
	return p.Writer.Publish(basekafka.TopicBookingCreated, booking.BookingRef, msgBytes)
}

// PublishStatusChanged streams one applied lifecycle transition.
func (p *Producer) PublishStatusChanged(booking models.Booking, from models.BookingStatus, actor models.Actor, reason string) error {
	event := statusChangedEvent{
		BookingRef: booking.BookingRef,
		From:       from,
		To:         booking.Status,
		Actor:      actor,
		Reason:     reason,
		At:         time.Now().UTC(),
	}
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event %s: %w", booking.BookingRef, err)
	}
	return p.Writer.Publish(basekafka.TopicBookingStatusChanged, booking.BookingRef, msgBytes)
}
