package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	catalog      *cataloguc.LoadCatalog
	availability *bookinguc.GetAvailability
	create       *bookinguc.CreateBooking
}

func NewPublicHandler(
	catalog *cataloguc.LoadCatalog,
	availability *bookinguc.GetAvailability,
	create *bookinguc.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		catalog:      catalog,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

// BookingRequest leaves the client fields unconstrained so the use case
// can report every invalid field at once.
type BookingRequest struct {
	BarbershopID uuid.UUID `json:"barbershop_id"`
	BarberID     uuid.UUID `json:"barber_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	Time         string    `json:"time"` // HH:MM
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone"`
	ClientEmail  string    `json:"client_email"`
	Notes        string    `json:"notes" binding:"max=255"`
}

func (r BookingRequest) input(createdBy *uuid.UUID) bookinguc.CreateBookingInput {
	return bookinguc.CreateBookingInput{
		BarbershopID: r.BarbershopID,
		BarberID:     r.BarberID,
		ServiceID:    r.ServiceID,
		Date:         r.Date,
		Time:         r.Time,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientEmail:  r.ClientEmail,
		Notes:        r.Notes,
		CreatedBy:    createdBy,
	}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbershops(c *gin.Context) {
	shops, err := h.catalog.ListBarbershops(c.Request.Context(), nil)
	if err != nil {
		httperr.EmptyList(c, "catalog_unavailable", "Não foi possível carregar as barbearias.")
		return
	}
	httpresp.List(c, shops)
}

func (h *PublicHandler) Catalog(c *gin.Context) {
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
		httperr.Write(c, http.StatusServiceUnavailable, "catalog_unavailable", "Não foi possível carregar a barbearia.")
		return
	}
	httpresp.OK(c, cat)
}

// ByHost resolves a shop from the host the client site is served at.
func (h *PublicHandler) ByHost(c *gin.Context) {
	cat, err := h.catalog.ShopByHost(c.Request.Context(), c.Query("host"))
	if err != nil {
		if _, ok := httperr.BusinessCode(err); ok {
			respondError(c, err)
			return
		}
		httperr.Write(c, http.StatusServiceUnavailable, "catalog_unavailable", "Não foi possível carregar a barbearia.")
		return
	}
	httpresp.OK(c, cat)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, err := uuid.Parse(c.Query("barber_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Selecione um barbeiro.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			respondError(c, err)
			return
		}
		// sem horários em vez de erro bloqueante
		httperr.EmptyList(c, "availability_unavailable", "Não foi possível carregar os horários.")
		return
	}
	httpresp.List(c, slots)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), req.input(nil))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, res)
}
