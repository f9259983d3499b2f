package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

type ServiceHandler struct {
	store   catalog.Store
	catalog *cataloguc.LoadCatalog
}

func NewServiceHandler(store catalog.Store, catalog *cataloguc.LoadCatalog) *ServiceHandler {
	return &ServiceHandler{store: store, catalog: catalog}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=255"`
	DurationMin int     `json:"duration_min" binding:"required,min=5,max=480"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
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
		httperr.EmptyList(c, "services_unavailable", "Não foi possível carregar os serviços.")
		return
	}
	httpresp.List(c, cat.Services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	shopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if _, ok := managedShop(c, h.store, p, shopID); !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	svc := &models.Service{
		BarbershopID: shopID,
		Name:         strings.TrimSpace(req.Name),
		Description:  strings.TrimSpace(req.Description),
		DurationMin:  req.DurationMin,
		Price:        req.Price,
	}
	if err := h.store.CreateService(c.Request.Context(), svc); err != nil {
		respondError(c, err)
		return
	}
	h.catalog.Invalidate(c.Request.Context(), shopID)

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	svc, ok := h.loadManaged(c, p)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}

	if err := h.store.UpdateService(c.Request.Context(), svc); err != nil {
		respondError(c, err)
		return
	}
	h.catalog.Invalidate(c.Request.Context(), svc.BarbershopID)

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	svc, ok := h.loadManaged(c, p)
	if !ok {
		return
	}

	if err := h.store.DeleteService(c.Request.Context(), svc.ID); err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		respondError(c, err)
		return
	}
	h.catalog.Invalidate(c.Request.Context(), svc.BarbershopID)

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) loadManaged(c *gin.Context, p session.Principal) (*models.Service, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	svc, err := h.store.GetServiceByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return nil, false
		}
		respondError(c, err)
		return nil, false
	}

	if _, ok := managedShop(c, h.store, p, svc.BarbershopID); !ok {
		return nil, false
	}
	return svc, true
}
