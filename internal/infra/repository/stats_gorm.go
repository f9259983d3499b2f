package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/dashboard"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

func (r *StatsGormRepository) Totals(
	ctx context.Context,
	adminID *uuid.UUID,
) (dashboard.Totals, error) {

	t := dashboard.Totals{Bookings: map[string]int64{
		string(domain.StatusScheduled): 0,
		string(domain.StatusCompleted): 0,
		string(domain.StatusCancelled): 0,
	}}
	db := r.db.WithContext(ctx)

	// --------------------------------------------------
	// Barbearias
	// --------------------------------------------------
	shops := db.Model(&models.Barbershop{})
	if adminID != nil {
		shops = shops.Where("admin_id = ?", *adminID)
	}
	if err := shops.Count(&t.Barbershops).Error; err != nil {
		return t, err
	}

	// --------------------------------------------------
	// Barbeiros (distintos, um barbeiro pode atender várias lojas)
	// --------------------------------------------------
	barbers := db.Table("barber_barbershops bb").
		Select("COUNT(DISTINCT bb.barber_id)")
	if adminID != nil {
		barbers = barbers.
			Joins("JOIN barbershops s ON s.id = bb.barbershop_id").
			Where("s.admin_id = ?", *adminID)
	}
	if err := barbers.Scan(&t.Barbers).Error; err != nil {
		return t, err
	}

	// --------------------------------------------------
	// Agendamentos por status + receita concluída
	// --------------------------------------------------
	scope := access.All()
	if adminID != nil {
		scope = access.ForAdmin(*adminID)
	}

	var byStatus []struct {
		Status  string
		Total   int64
		Revenue float64
	}
	if err := scoped(db.Model(&models.Booking{}), scope).
		Select("bookings.status AS status, COUNT(*) AS total, COALESCE(SUM(services.price), 0) AS revenue").
		Joins("JOIN services ON services.id = bookings.service_id").
		Group("bookings.status").
		Scan(&byStatus).Error; err != nil {
		return t, err
	}

	for _, row := range byStatus {
		t.Bookings[row.Status] = row.Total
		if row.Status == string(domain.StatusCompleted) {
			t.Revenue = row.Revenue
		}
	}

	return t, nil
}

func (r *StatsGormRepository) Scheduled(
	ctx context.Context,
	scope access.Scope,
	from string,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := scoped(r.db.WithContext(ctx).Model(&models.Booking{}), scope).
		Preload("Barbershop").
		Preload("Barber").
		Preload("Service").
		Where("bookings.status = ? AND bookings.date >= ?", domain.StatusScheduled, from).
		Order("bookings.date ASC, bookings.time ASC").
		Limit(100).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ dashboard.Stats = (*StatsGormRepository)(nil)
