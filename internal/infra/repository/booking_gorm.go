package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// scoped narrows a bookings query to what scope may see.
func scoped(q *gorm.DB, scope access.Scope) *gorm.DB {
	switch {
	case scope.Unrestricted:
		return q
	case scope.AdminID != nil:
		return q.Where(
			"bookings.barbershop_id IN (SELECT id FROM barbershops WHERE admin_id = ?)",
			*scope.AdminID,
		)
	case scope.BarberUserID != nil:
		return q.Where(
			"bookings.barber_id IN (SELECT id FROM barbers WHERE user_id = ?)",
			*scope.BarberUserID,
		)
	case scope.ClientPhone != "":
		return q.Where("bookings.client_phone = ?", scope.ClientPhone)
	}
	return q.Where("1 = 0")
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetBarbershop(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetBarberInShop(
	ctx context.Context,
	shopID uuid.UUID,
	barberID uuid.UUID,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Joins("JOIN barber_barbershops bb ON bb.barber_id = barbers.id").
		Where("barbers.id = ? AND bb.barbershop_id = ?", barberID, shopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	shopID uuid.UUID,
	serviceID uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, shopID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListScheduledTimes(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("barber_id = ? AND date = ? AND status = ?", barberID, date, domain.StatusScheduled).
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// CreateBooking relies on ux_bookings_barber_slot to reject a second
// scheduled booking of the same barber, date and time.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	scope access.Scope,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := scoped(r.db.WithContext(ctx).Model(&models.Booking{}), scope).
		Preload("Barbershop").
		Preload("Barber").
		Preload("Service").
		Where("bookings.date BETWEEN ? AND ?", f.From, f.To)

	if f.BarberID != nil {
		q = q.Where("bookings.barber_id = ?", *f.BarberID)
	}
	if f.Status != nil {
		q = q.Where("bookings.status = ?", string(*f.Status))
	}

	var out []models.Booking
	if err := q.Order("bookings.date ASC, bookings.time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Status (batch)
// --------------------------------------------------

func (r *BookingGormRepository) TransitionBookings(
	ctx context.Context,
	scope access.Scope,
	ids []uuid.UUID,
	fn func(*models.Booking) error,
) ([]models.Booking, error) {

	var out []models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var rows []models.Booking
		if err := scoped(tx.Model(&models.Booking{}), scope).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("bookings.id IN ?", ids).
			Find(&rows).Error; err != nil {
			return err
		}

		if len(rows) != len(ids) {
			return httperr.ErrBusiness("booking_not_found")
		}

		for i := range rows {
			if err := fn(&rows[i]); err != nil {
				return err
			}
			if err := tx.Model(&rows[i]).
				Select("status", "cancelled_at", "completed_at", "updated_at").
				Updates(&rows[i]).Error; err != nil {
				return err
			}
		}

		out = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
