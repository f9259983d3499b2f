package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Store is the write side of the catalog. Callers invalidate the cached
// ShopCatalog of every shop a write touches.
type Store interface {
	Repository

	CreateBarbershop(ctx context.Context, s *models.Barbershop) error
	UpdateBarbershop(ctx context.Context, s *models.Barbershop) error
	DeleteBarbershop(ctx context.Context, id uuid.UUID) error

	// GetBarber preloads the linked barbershops.
	GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error)
	// UpdateBarber saves b; a non-nil shopIDs replaces its shop links.
	UpdateBarber(ctx context.Context, b *models.Barber, shopIDs []uuid.UUID) error
	DeleteBarber(ctx context.Context, id uuid.UUID) error

	ListWorkingHours(ctx context.Context, barberID uuid.UUID) ([]models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, barberID uuid.UUID, hours []models.WorkingHours) error

	GetServiceByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}
