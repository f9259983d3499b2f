package booking

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Transition moves a booking to target and stamps the matching timestamp.
func Transition(b *models.Booking, target Status, now time.Time) error {
	if err := CanTransition(Status(b.Status), target); err != nil {
		return err
	}

	b.Status = string(target)
	switch target {
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}
	return nil
}
