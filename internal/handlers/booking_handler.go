package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	list    *bookinguc.ListBookings
	create  *bookinguc.CreateBooking
	status  *bookinguc.SetStatus
	catalog *cataloguc.LoadCatalog
}

func NewBookingHandler(
	list *bookinguc.ListBookings,
	create *bookinguc.CreateBooking,
	status *bookinguc.SetStatus,
	catalog *cataloguc.LoadCatalog,
) *BookingHandler {
	return &BookingHandler{
		list:    list,
		create:  create,
		status:  status,
		catalog: catalog,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SetStatusBatchRequest struct {
	IDs    []uuid.UUID `json:"ids" binding:"required"`
	Status string      `json:"status" binding:"required"`
}

// ======================================================
// LIST (data ou mês)
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	barberID, ok := optionalUUIDQuery(c, "barber_id")
	if !ok {
		return
	}

	var (
		bookings []models.Booking
		err      error
	)

	switch {
	case c.Query("date") != "":
		bookings, err = h.list.ByDate(c.Request.Context(), p.Scope(), c.Query("date"), barberID)
	case c.Query("year") != "" || c.Query("month") != "":
		year, err1 := strconv.Atoi(c.Query("year"))
		month, err2 := strconv.Atoi(c.Query("month"))
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, "invalid_month", "Mês inválido.")
			return
		}
		bookings, err = h.list.ByMonth(c.Request.Context(), p.Scope(), year, month, barberID)
	default:
		httperr.BadRequest(c, "missing_period", "Informe a data ou o mês.")
		return
	}

	if err != nil {
		if _, business := httperr.BusinessCode(err); business {
			respondError(c, err)
			return
		}
		httperr.EmptyList(c, "bookings_unavailable", "Não foi possível carregar os agendamentos.")
		return
	}
	httpresp.List(c, bookings)
}

// ======================================================
// CREATE (equipe agendando para o cliente)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	allowed, err := h.mayBookFor(c, p, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !allowed {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
		return
	}

	createdBy := p.UserID
	res, err := h.create.Execute(c.Request.Context(), req.input(&createdBy))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, res)
}

// mayBookFor: admins book in the shops they manage, barbers only in their
// own agenda.
func (h *BookingHandler) mayBookFor(c *gin.Context, p session.Principal, req BookingRequest) (bool, error) {
	if p.Role == access.RoleSuperAdmin {
		return true, nil
	}

	cat, err := h.catalog.Shop(c.Request.Context(), req.BarbershopID)
	if err != nil {
		return false, err
	}

	switch p.Role {
	case access.RoleAdmin:
		return canManageShop(p, &cat.Barbershop), nil
	case access.RoleBarber:
		for _, b := range cat.Barbers {
			if b.ID == req.BarberID && b.UserID != nil && *b.UserID == p.UserID {
				return true, nil
			}
		}
	}
	return false, nil
}

// ======================================================
// STATUS (único e em lote)
// ======================================================

func (h *BookingHandler) SetStatus(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o novo status.")
		return
	}

	updated, err := h.status.Execute(c.Request.Context(), p.UserID, p.Scope(), []uuid.UUID{id}, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, updated[0])
}

func (h *BookingHandler) SetStatusBatch(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req SetStatusBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe os agendamentos e o novo status.")
		return
	}

	updated, err := h.status.Execute(c.Request.Context(), p.UserID, p.Scope(), req.IDs, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, updated)
}
