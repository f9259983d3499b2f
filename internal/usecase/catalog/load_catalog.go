package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type LoadCatalog struct {
	repo       domain.Repository
	cache      domain.Cache
	log        *zap.Logger
	baseDomain string
}

func NewLoadCatalog(
	repo domain.Repository,
	cache domain.Cache,
	log *zap.Logger,
) *LoadCatalog {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LoadCatalog{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// WithBaseDomain sets the domain whose subdomains name shops, e.g.
// central.<base>.
func (uc *LoadCatalog) WithBaseDomain(base string) *LoadCatalog {
	uc.baseDomain = validators.NormalizeHost(base)
	return uc
}

// ListBarbershops returns shops ordered by name; adminID narrows the list
// to the shops that admin owns.
func (uc *LoadCatalog) ListBarbershops(
	ctx context.Context,
	adminID *uuid.UUID,
) ([]models.Barbershop, error) {

	shops, err := uc.repo.ListBarbershops(ctx, adminID)
	if err != nil {
		uc.log.Error("list barbershops failed", zap.Error(err))
		return []models.Barbershop{}, err
	}
	return shops, nil
}

// Shop loads one shop with its barbers and services, from cache when
// possible.
func (uc *LoadCatalog) Shop(
	ctx context.Context,
	shopID uuid.UUID,
) (*domain.ShopCatalog, error) {

	if c, ok := uc.cache.Get(ctx, shopID); ok {
		return c, nil
	}

	shop, err := uc.repo.GetBarbershop(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barbershop_not_found")
		}
		uc.log.Error("load barbershop failed", zap.String("barbershop_id", shopID.String()), zap.Error(err))
		return nil, err
	}

	barbers, err := uc.repo.ListBarbers(ctx, shopID)
	if err != nil {
		uc.log.Error("list barbers failed", zap.String("barbershop_id", shopID.String()), zap.Error(err))
		return nil, err
	}

	services, err := uc.repo.ListServices(ctx, shopID)
	if err != nil {
		uc.log.Error("list services failed", zap.String("barbershop_id", shopID.String()), zap.Error(err))
		return nil, err
	}

	c := &domain.ShopCatalog{
		Barbershop: *shop,
		Barbers:    nonNil(barbers),
		Services:   nonNil(services),
	}
	uc.cache.Set(ctx, c)
	return c, nil
}

// ShopByHost resolves the shop a host name belongs to: a subdomain of the
// base domain, otherwise a custom domain.
func (uc *LoadCatalog) ShopByHost(
	ctx context.Context,
	host string,
) (*domain.ShopCatalog, error) {

	host = validators.NormalizeHost(host)
	if host == "" {
		return nil, httperr.ErrBusiness("invalid_host")
	}

	var (
		shop *models.Barbershop
		err  error
	)
	if sub, ok := uc.subdomainOf(host); ok {
		shop, err = uc.repo.GetBarbershopBySubdomain(ctx, sub)
	} else {
		shop, err = uc.repo.GetBarbershopByCustomDomain(ctx, host)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barbershop_not_found")
		}
		uc.log.Error("resolve barbershop host failed", zap.String("host", host), zap.Error(err))
		return nil, err
	}

	return uc.Shop(ctx, shop.ID)
}

func (uc *LoadCatalog) subdomainOf(host string) (string, bool) {
	if uc.baseDomain == "" {
		return "", false
	}
	sub, ok := strings.CutSuffix(host, "."+uc.baseDomain)
	if !ok || sub == "" || strings.Contains(sub, ".") {
		return "", false
	}
	return sub, true
}

// Invalidate drops the cached catalog of shopID. Every write to a shop,
// its barbers or its services goes through here.
func (uc *LoadCatalog) Invalidate(ctx context.Context, shopID uuid.UUID) {
	uc.cache.Invalidate(ctx, shopID)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
