package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	scope access.Scope,
	date string,
	barberID *uuid.UUID,
) ([]models.Booking, error) {

	if _, err := time.Parse(timezone.DateLayout, date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.list(ctx, scope, domain.ListFilter{
		From:     date,
		To:       date,
		BarberID: barberID,
	})
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	scope access.Scope,
	year int,
	month int,
	barberID *uuid.UUID,
) ([]models.Booking, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	return uc.list(ctx, scope, domain.ListFilter{
		From:     first.Format(timezone.DateLayout),
		To:       last.Format(timezone.DateLayout),
		BarberID: barberID,
	})
}

// Range lists bookings between two YYYY-MM-DD dates, both inclusive.
func (uc *ListBookings) Range(
	ctx context.Context,
	scope access.Scope,
	from, to string,
) ([]models.Booking, error) {

	f, err1 := time.Parse(timezone.DateLayout, from)
	t, err2 := time.Parse(timezone.DateLayout, to)
	if err1 != nil || err2 != nil || t.Before(f) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	return uc.list(ctx, scope, domain.ListFilter{From: from, To: to})
}

func (uc *ListBookings) list(
	ctx context.Context,
	scope access.Scope,
	f domain.ListFilter,
) ([]models.Booking, error) {

	if scope.Empty() {
		return []models.Booking{}, nil
	}

	out, err := uc.repo.ListBookings(ctx, scope, f)
	if err != nil {
		return []models.Booking{}, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}
