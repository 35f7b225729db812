package events

import (
	"context"

	"bookly/pkg/kafka"
	"bookly/pkg/logger"
	"bookly/pkg/model"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingUpdated = "booking.updated"
	TypeBookingDeleted = "booking.deleted"

	source = "bookings"
)

// Publisher emits booking lifecycle events. Publishing is best effort:
// implementations log failures and never fail the originating request.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingUpdated(ctx context.Context, booking *model.Booking)
	BookingDeleted(ctx context.Context, booking *model.Booking)
	Close() error
}

// Event is the payload written to the booking events topic.
type Event struct {
	Type    string         `json:"type"`
	Booking *model.Booking `json:"booking"`
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking)
}

func (p *kafkaPublisher) BookingUpdated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingUpdated, booking)
}

func (p *kafkaPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingDeleted, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	msg, err := kafka.NewMessage().
		WithKey(booking.ID).
		WithJSONValue(Event{Type: eventType, Booking: booking}).
		WithEventType(eventType).
		WithSource(source).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher is wired when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) BookingCreated(context.Context, *model.Booking) {}
func (NopPublisher) BookingUpdated(context.Context, *model.Booking) {}
func (NopPublisher) BookingDeleted(context.Context, *model.Booking) {}
func (NopPublisher) Close() error                                   { return nil }
