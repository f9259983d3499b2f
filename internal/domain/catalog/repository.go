// Package catalog is the read side of barbershops, their barbers and
// their services.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ShopCatalog is everything the booking wizard needs for one shop.
type ShopCatalog struct {
	Barbershop models.Barbershop `json:"barbershop"`
	Barbers    []models.Barber   `json:"barbers"`
	Services   []models.Service  `json:"services"`
}

// Unique indexes on barbershops; a violation means the host is taken.
const (
	SubdomainIndex    = "ux_barbershops_subdomain"
	CustomDomainIndex = "ux_barbershops_custom_domain"
)

type Repository interface {
	// ListBarbershops orders by name. A nil adminID lists every shop.
	ListBarbershops(ctx context.Context, adminID *uuid.UUID) ([]models.Barbershop, error)
	GetBarbershop(ctx context.Context, id uuid.UUID) (*models.Barbershop, error)
	// Lookups by tenant host; values are stored lowercase.
	GetBarbershopBySubdomain(ctx context.Context, subdomain string) (*models.Barbershop, error)
	GetBarbershopByCustomDomain(ctx context.Context, domain string) (*models.Barbershop, error)

	// ListBarbers returns the barbers linked to shopID, ordered by name.
	ListBarbers(ctx context.Context, shopID uuid.UUID) ([]models.Barber, error)
	ListServices(ctx context.Context, shopID uuid.UUID) ([]models.Service, error)
}

// Cache keeps ShopCatalogs between reads. Implementations swallow their
// own failures; a miss is always safe.
type Cache interface {
	Get(ctx context.Context, shopID uuid.UUID) (*ShopCatalog, bool)
	Set(ctx context.Context, c *ShopCatalog)
	Invalidate(ctx context.Context, shopID uuid.UUID)
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, uuid.UUID) (*ShopCatalog, bool) { return nil, false }
func (NoopCache) Set(context.Context, *ShopCatalog)                   {}
func (NoopCache) Invalidate(context.Context, uuid.UUID)               {}
