package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ListFilter selects bookings by date range (inclusive, YYYY-MM-DD) and
// optionally by barber or status.
type ListFilter struct {
	From     string
	To       string
	BarberID *uuid.UUID
	Status   *Status
}

type Repository interface {
	// -------- Catalog lookups --------
	GetBarbershop(ctx context.Context, id uuid.UUID) (*models.Barbershop, error)
	GetBarberInShop(ctx context.Context, shopID, barberID uuid.UUID) (*models.Barber, error)
	GetService(ctx context.Context, shopID, serviceID uuid.UUID) (*models.Service, error)

	// -------- Availability --------
	ListScheduledTimes(ctx context.Context, barberID uuid.UUID, date string) ([]string, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	ListBookings(ctx context.Context, scope access.Scope, f ListFilter) ([]models.Booking, error)

	// TransitionBookings locks every id inside scope, applies fn to each
	// and saves them in one transaction. Missing ids or an fn error roll
	// the whole batch back.
	TransitionBookings(
		ctx context.Context,
		scope access.Scope,
		ids []uuid.UUID,
		fn func(*models.Booking) error,
	) ([]models.Booking, error)
}
