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
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/staff"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	store    catalog.Store
	catalog  *cataloguc.LoadCatalog
	accounts *staff.CreateBarberAccount
	audit    *audit.Dispatcher
}

func NewBarberHandler(
	store catalog.Store,
	catalog *cataloguc.LoadCatalog,
	accounts *staff.CreateBarberAccount,
	audit *audit.Dispatcher,
) *BarberHandler {
	return &BarberHandler{
		store:    store,
		catalog:  catalog,
		accounts: accounts,
		audit:    audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarberRequest struct {
	Name          string      `json:"name" binding:"required,max=100"`
	Email         string      `json:"email" binding:"required,email"`
	Password      string      `json:"password" binding:"required,min=6"`
	Phone         string      `json:"phone" binding:"omitempty,br_phone"`
	Specialties   []string    `json:"specialties" binding:"max=20,dive,max=50"`
	BarbershopIDs []uuid.UUID `json:"barbershop_ids"`
}

type UpdateBarberRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=1,max=100"`
	Phone         *string      `json:"phone" binding:"omitempty,br_phone"`
	Specialties   *[]string    `json:"specialties" binding:"omitempty,max=20,dive,max=50"`
	BarbershopIDs *[]uuid.UUID `json:"barbershop_ids"`
}

// ======================================================
// LIST / CREATE
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	cat, err := h.catalog.Shop(c.Request.Context(), shopID)
	if err != nil {
		if httperr.IsBusiness(err, "barbershop_not_found") {
			respondError(c, err)
			return
		}
		httperr.EmptyList(c, "barbers_unavailable", "Não foi possível carregar os barbeiros.")
		return
	}
	httpresp.List(c, cat.Barbers)
}

// Create opens the barber's login and links the barber to the shop in the
// path plus any extra shop the caller also manages.
func (h *BarberHandler) Create(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	shopIDs := uniqueIDs(append([]uuid.UUID{shopID}, req.BarbershopIDs...))
	for _, id := range shopIDs {
		if _, ok := managedShop(c, h.store, p, id); !ok {
			return
		}
	}

	barber, err := h.accounts.Execute(c.Request.Context(), staff.CreateBarberAccountInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		Specialties:   req.Specialties,
		BarbershopIDs: shopIDs,
		CreatedBy:     p.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c, shopIDs)
	httpresp.Created(c, barber)
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *BarberHandler) Update(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}
	if !managesAny(p, barber.Barbershops) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Specialties != nil {
		barber.Specialties = append([]string{}, (*req.Specialties)...)
	}

	before := shopIDsOf(barber.Barbershops)
	var links []uuid.UUID
	if req.BarbershopIDs != nil {
		requested := uniqueIDs(*req.BarbershopIDs)
		for _, id := range requested {
			if !containsID(before, id) {
				if _, ok := managedShop(c, h.store, p, id); !ok {
					return
				}
			}
		}

		// vínculos com barbearias de outros donos ficam como estão
		links = requested
		for _, s := range barber.Barbershops {
			if !canManageShop(p, &s) && !containsID(links, s.ID) {
				links = append(links, s.ID)
			}
		}
		if len(links) == 0 {
			respondError(c, httperr.ErrBusiness("barbershop_required"))
			return
		}
	}

	if err := h.store.UpdateBarber(c.Request.Context(), barber, links); err != nil {
		respondError(c, err)
		return
	}

	h.invalidate(c, uniqueIDs(append(before, links...)))
	httpresp.OK(c, barber)
}

// Delete requires managing every shop the barber works in.
func (h *BarberHandler) Delete(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}
	for _, s := range barber.Barbershops {
		if !canManageShop(p, &s) {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
			return
		}
	}
	if len(barber.Barbershops) == 0 && p.Role != access.RoleSuperAdmin {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
		return
	}

	if err := h.store.DeleteBarber(c.Request.Context(), barber.ID); err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		respondError(c, err)
		return
	}

	shopIDs := shopIDsOf(barber.Barbershops)
	h.invalidate(c, shopIDs)
	if len(shopIDs) > 0 {
		h.audit.Dispatch(audit.Event{
			BarbershopID: shopIDs[0],
			UserID:       &p.UserID,
			Action:       "barber_deleted",
			Entity:       "barber",
			EntityID:     &barber.ID,
		})
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BarberHandler) loadBarber(c *gin.Context) (*models.Barber, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	barber, err := h.store.GetBarber(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return nil, false
		}
		respondError(c, err)
		return nil, false
	}
	return barber, true
}

func (h *BarberHandler) invalidate(c *gin.Context, shopIDs []uuid.UUID) {
	for _, id := range shopIDs {
		h.catalog.Invalidate(c.Request.Context(), id)
	}
}

// mayEditHours: the barber or whoever manages one of the barber's shops.
func mayEditHours(p session.Principal, b *models.Barber) bool {
	if p.Role == access.RoleBarber {
		return b.UserID != nil && *b.UserID == p.UserID
	}
	return managesAny(p, b.Barbershops)
}

func managesAny(p session.Principal, shops []models.Barbershop) bool {
	if p.Role == access.RoleSuperAdmin {
		return true
	}
	for i := range shops {
		if canManageShop(p, &shops[i]) {
			return true
		}
	}
	return false
}

func shopIDsOf(shops []models.Barbershop) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(shops))
	for _, s := range shops {
		ids = append(ids, s.ID)
	}
	return ids
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil && !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}
