package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) ListBarbershops(
	ctx context.Context,
	adminID *uuid.UUID,
) ([]models.Barbershop, error) {

	q := r.db.WithContext(ctx)
	if adminID != nil {
		q = q.Where("admin_id = ?", *adminID)
	}

	var shops []models.Barbershop
	if err := q.Order("name ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *CatalogGormRepository) GetBarbershop(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CatalogGormRepository) GetBarbershopBySubdomain(
	ctx context.Context,
	subdomain string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, "subdomain = ?", subdomain).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CatalogGormRepository) GetBarbershopByCustomDomain(
	ctx context.Context,
	domain string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, "custom_domain = ?", domain).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *CatalogGormRepository) ListBarbers(
	ctx context.Context,
	shopID uuid.UUID,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Joins("JOIN barber_barbershops bb ON bb.barber_id = barbers.id").
		Where("bb.barbershop_id = ?", shopID).
		Order("barbers.name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	shopID uuid.UUID,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", shopID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// ======================================================
// WRITES
// ======================================================

func (r *CatalogGormRepository) CreateBarbershop(ctx context.Context, s *models.Barbershop) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *CatalogGormRepository) UpdateBarbershop(ctx context.Context, s *models.Barbershop) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *CatalogGormRepository) DeleteBarbershop(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM barber_barbershops WHERE barbershop_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Barbershop{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CatalogGormRepository) GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).
		Preload("Barbershops").
		First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CatalogGormRepository) UpdateBarber(
	ctx context.Context,
	b *models.Barber,
	shopIDs []uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(b).Error; err != nil {
			return err
		}
		if shopIDs == nil {
			return nil
		}

		shops := make([]models.Barbershop, 0, len(shopIDs))
		for _, id := range shopIDs {
			shops = append(shops, models.Barbershop{ID: id})
		}
		if err := tx.Model(b).Omit("Barbershops.*").Association("Barbershops").Replace(shops); err != nil {
			return err
		}
		b.Barbershops = shops
		return nil
	})
}

// DeleteBarber removes the barber, its links, its week and its login.
// A barber with bookings is kept: barber_has_bookings.
func (r *CatalogGormRepository) DeleteBarber(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Barber
		if err := tx.Select("id", "user_id").First(&b, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM barber_barbershops WHERE barber_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.WorkingHours{}, "barber_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Barber{}, "id = ?", id).Error; err != nil {
			return err
		}

		// só a conta de barbeiro; um admin que também atende mantém o login
		if b.UserID != nil {
			if err := tx.Where("id = ? AND role = ?", *b.UserID, string(access.RoleBarber)).
				Delete(&models.User{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if httperr.IsForeignKeyViolation(err) {
		return httperr.ErrBusiness("barber_has_bookings")
	}
	return err
}

func (r *CatalogGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// ReplaceWorkingHours swaps the whole week in one transaction.
func (r *CatalogGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
	hours []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}

func (r *CatalogGormRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *CatalogGormRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if httperr.IsForeignKeyViolation(res.Error) {
		return httperr.ErrBusiness("service_has_bookings")
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ catalog.Store = (*CatalogGormRepository)(nil)
