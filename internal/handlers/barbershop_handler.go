package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

type BarbershopHandler struct {
	store     catalog.Store
	catalog   *cataloguc.LoadCatalog
	audit     *audit.Dispatcher
	defaultTZ string
}

func NewBarbershopHandler(
	store catalog.Store,
	catalog *cataloguc.LoadCatalog,
	audit *audit.Dispatcher,
	defaultTZ string,
) *BarbershopHandler {
	return &BarbershopHandler{store: store, catalog: catalog, audit: audit, defaultTZ: defaultTZ}
}

type CreateBarbershopRequest struct {
	Name         string     `json:"name" binding:"required,max=100"`
	Address      string     `json:"address" binding:"max=255"`
	Phone        string     `json:"phone" binding:"omitempty,br_phone"`
	AdminID      *uuid.UUID `json:"admin_id"`
	Timezone     string     `json:"timezone"`
	Subdomain    string     `json:"subdomain"`
	CustomDomain string     `json:"custom_domain"`
}

// UpdateBarbershopRequest: an empty subdomain or custom_domain clears it.
type UpdateBarbershopRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Address      *string    `json:"address" binding:"omitempty,max=255"`
	Phone        *string    `json:"phone" binding:"omitempty,br_phone"`
	AdminID      *uuid.UUID `json:"admin_id"`
	Timezone     *string    `json:"timezone"`
	Subdomain    *string    `json:"subdomain"`
	CustomDomain *string    `json:"custom_domain"`
}

// tenantHost normalizes an optional host field; blank means none.
func tenantHost(raw string, valid func(string) bool, field, msg string, fields map[string]string) *string {
	v := validators.NormalizeHost(raw)
	if v == "" {
		return nil
	}
	if !valid(v) {
		fields[field] = msg
		return nil
	}
	return &v
}

const (
	msgSubdomain    = "Use apenas letras, números e hífen (até 63 caracteres)."
	msgCustomDomain = "Informe um domínio válido, ex.: minhabarbearia.com.br."
)

// hostConflict maps a unique violation on the tenant hosts to its
// business error.
func hostConflict(err error) error {
	switch {
	case httperr.IsUniqueViolation(err, catalog.SubdomainIndex):
		return httperr.ErrBusiness("subdomain_taken")
	case httperr.IsUniqueViolation(err, catalog.CustomDomainIndex):
		return httperr.ErrBusiness("custom_domain_taken")
	}
	return err
}

// List: admins see the shops they own, super admins every shop.
func (h *BarbershopHandler) List(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	shops, err := h.catalog.ListBarbershops(c.Request.Context(), adminFilter(p))
	if err != nil {
		httperr.EmptyList(c, "barbershops_unavailable", "Não foi possível carregar as barbearias.")
		return
	}
	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Create(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req CreateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = h.defaultTZ
	}
	fields := map[string]string{}
	if !timezone.IsValid(tz) {
		fields["timezone"] = "Fuso horário inválido."
	}
	sub := tenantHost(req.Subdomain, validators.IsSubdomain, "subdomain", msgSubdomain, fields)
	domain := tenantHost(req.CustomDomain, validators.IsDomain, "custom_domain", msgCustomDomain, fields)
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	shop := &models.Barbershop{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Phone:        req.Phone,
		AdminID:      req.AdminID,
		Timezone:     tz,
		Subdomain:    sub,
		CustomDomain: domain,
	}
	if err := h.store.CreateBarbershop(c.Request.Context(), shop); err != nil {
		respondError(c, hostConflict(err))
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &p.UserID,
		Action:       "barbershop_created",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	httpresp.Created(c, shop)
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	shop, ok := managedShop(c, h.store, p, id)
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.Validation(c, map[string]string{"timezone": "Fuso horário inválido."})
			return
		}
		shop.Timezone = *req.Timezone
	}
	fields := map[string]string{}
	if req.Subdomain != nil {
		shop.Subdomain = tenantHost(*req.Subdomain, validators.IsSubdomain, "subdomain", msgSubdomain, fields)
	}
	if req.CustomDomain != nil {
		shop.CustomDomain = tenantHost(*req.CustomDomain, validators.IsDomain, "custom_domain", msgCustomDomain, fields)
	}
	if len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}
	if req.AdminID != nil {
		// só o super admin troca o dono
		if p.Role != access.RoleSuperAdmin {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
			return
		}
		shop.AdminID = req.AdminID
	}

	if err := h.store.UpdateBarbershop(c.Request.Context(), shop); err != nil {
		respondError(c, hostConflict(err))
		return
	}
	h.catalog.Invalidate(c.Request.Context(), shop.ID)

	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Delete(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if _, ok := managedShop(c, h.store, p, id); !ok {
		return
	}

	if err := h.store.DeleteBarbershop(c.Request.Context(), id); err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return
		}
		respondError(c, err)
		return
	}
	h.catalog.Invalidate(c.Request.Context(), id)

	c.Status(http.StatusNoContent)
}
