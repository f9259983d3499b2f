package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/staff"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Omit("Barbershop").Create(u).Error
}

func (r *AccountGormRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

// CreateBarber inserts the barber and its shop links in one transaction.
func (r *AccountGormRepository) CreateBarber(
	ctx context.Context,
	b *models.Barber,
	shopIDs []uuid.UUID,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Barbershops", "WorkingHours").Create(b).Error; err != nil {
			return err
		}

		shops := make([]models.Barbershop, 0, len(shopIDs))
		for _, id := range shopIDs {
			shops = append(shops, models.Barbershop{ID: id})
		}
		return tx.Model(b).Omit("Barbershops.*").Association("Barbershops").Append(shops)
	})
}

func (r *AccountGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Preload("Barbershop").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *AccountGormRepository) SetAvatarURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("avatar_url", url).Error
}

var (
	_ staff.Accounts = (*AccountGormRepository)(nil)
	_ account.Users  = (*AccountGormRepository)(nil)
)
