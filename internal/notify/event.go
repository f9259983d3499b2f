// Package notify delivers booking events to the outside world after the
// booking is already committed. Delivery failures never reach the caller.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const TopicBookingCreated = "booking.created"

type BookingCreated struct {
	BookingID    uuid.UUID `json:"booking_id"`
	BarbershopID uuid.UUID `json:"barbershop_id"`
	BarberID     uuid.UUID `json:"barber_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone"`
	Message      string    `json:"message"`
	WhatsAppURL  string    `json:"whatsapp_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, ev BookingCreated) error
}
