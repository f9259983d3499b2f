package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

func TestPublicListBarbershops(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/public/barbershops", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Data  []map[string]any `json:"data"`
		Total int              `json:"total"`
	}](t, w)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Barbearia Central", body.Data[0]["name"])
}

func TestPublicListBarbershopsStoreDown(t *testing.T) {
	e := newTestEnv(t)
	e.db.readErr = errStoreDown

	w := e.do(http.MethodGet, "/api/public/barbershops", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[errBody](t, w)
	assert.Equal(t, "catalog_unavailable", body.Code)
	assert.NotNil(t, body.Data)
	assert.Empty(t, body.Data)
}

func TestPublicCatalog(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/public/barbershops/"+e.shop.ID.String()+"/catalog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Barbers  []map[string]any `json:"barbers"`
		Services []map[string]any `json:"services"`
	}](t, w)
	assert.Len(t, body.Barbers, 1)
	assert.Len(t, body.Services, 1)

	w = e.do(http.MethodGet, "/api/public/barbershops/"+uuid.NewString()+"/catalog", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barbershop_not_found", decode[errBody](t, w).Code)

	w = e.do(http.MethodGet, "/api/public/barbershops/abc/catalog", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode[errBody](t, w).Code)
}

func TestPublicBarbershopByHost(t *testing.T) {
	e := newTestEnv(t)
	shop := e.db.shops[e.shop.ID]
	sub, custom := "central", "barbeariacentral.com.br"
	shop.Subdomain, shop.CustomDomain = &sub, &custom
	e.db.shops[e.shop.ID] = shop

	for _, host := range []string{"central." + testBaseDomain, "Central.AgendaBarber.com.br:443", custom} {
		w := e.do(http.MethodGet, "/api/public/barbershops/by-host?host="+host, "", nil)
		require.Equal(t, http.StatusOK, w.Code, host)
		body := decode[struct {
			Barbershop struct {
				ID string `json:"id"`
			} `json:"barbershop"`
			Barbers []map[string]any `json:"barbers"`
		}](t, w)
		assert.Equal(t, e.shop.ID.String(), body.Barbershop.ID)
		assert.Len(t, body.Barbers, 1)
	}

	w := e.do(http.MethodGet, "/api/public/barbershops/by-host?host=outra."+testBaseDomain, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barbershop_not_found", decode[errBody](t, w).Code)

	w = e.do(http.MethodGet, "/api/public/barbershops/by-host", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_host", decode[errBody](t, w).Code)

	e.db.readErr = errStoreDown
	w = e.do(http.MethodGet, "/api/public/barbershops/by-host?host="+custom, "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPublicAvailability(t *testing.T) {
	e := newTestEnv(t)
	date := futureDate(3)
	path := "/api/public/availability?barber_id=" + e.barber.ID.String() + "&date=" + date

	w := e.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 22, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	e.addBooking(date, "09:00", "scheduled")
	e.addBooking(date, "09:30", "cancelled")

	w = e.do(http.MethodGet, path, "", nil)
	body := decode[struct {
		Data []string `json:"data"`
	}](t, w)
	assert.Len(t, body.Data, 21)
	assert.NotContains(t, body.Data, "09:00")
	assert.Contains(t, body.Data, "09:30")
}

func TestPublicAvailabilityErrors(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/public/availability?date="+futureDate(1), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_barber_id", decode[errBody](t, w).Code)

	w = e.do(http.MethodGet, "/api/public/availability?barber_id="+e.barber.ID.String()+"&date=15/06/2030", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", decode[errBody](t, w).Code)

	e.db.readErr = errStoreDown
	w = e.do(http.MethodGet, "/api/public/availability?barber_id="+e.barber.ID.String()+"&date="+futureDate(1), "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode[errBody](t, w)
	assert.Equal(t, "availability_unavailable", body.Code)
	assert.Empty(t, body.Data)
}

func (e *testEnv) bookingRequest(date, at string) BookingRequest {
	return BookingRequest{
		BarbershopID: e.shop.ID,
		BarberID:     e.barber.ID,
		ServiceID:    e.cut.ID,
		Date:         date,
		Time:         at,
		ClientName:   "Maria Silva",
		ClientPhone:  "(11) 98765-4321",
		ClientEmail:  "maria@email.com",
	}
}

func TestPublicCreateBooking(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/public/bookings", "", e.bookingRequest(futureDate(5), "10:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	res := decode[bookinguc.CreateBookingResult](t, w)
	assert.Equal(t, "scheduled", res.Booking.Status)
	assert.Equal(t, "11987654321", res.Booking.ClientPhone)
	assert.Contains(t, res.Confirmation.Message, "Barbearia Central")
	assert.Contains(t, res.Confirmation.Message, "R$ 45,00")
	assert.Contains(t, res.Confirmation.WhatsAppURL, "https://wa.me/5511987654321?text=")
	require.Len(t, e.db.bookings, 1)
}

func TestPublicCreateBookingValidation(t *testing.T) {
	e := newTestEnv(t)

	req := e.bookingRequest(futureDate(5), "10:00")
	req.ClientName = "  "
	req.ClientPhone = "123"

	w := e.do(http.MethodPost, "/api/public/bookings", "", req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[errBody](t, w)
	assert.Equal(t, "validation_failed", body.Code)
	assert.Contains(t, body.Fields, "client_name")
	assert.Contains(t, body.Fields, "client_phone")
	assert.Empty(t, e.db.bookings)
}

func TestPublicCreateBookingUnknownBarber(t *testing.T) {
	e := newTestEnv(t)

	req := e.bookingRequest(futureDate(5), "10:00")
	req.BarberID = uuid.New()

	w := e.do(http.MethodPost, "/api/public/bookings", "", req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barber_not_found", decode[errBody](t, w).Code)
}

func TestPublicCreateBookingSlotTaken(t *testing.T) {
	e := newTestEnv(t)
	date := futureDate(5)

	w := e.do(http.MethodPost, "/api/public/bookings", "", e.bookingRequest(date, "10:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	// o horário sumiu da grade, então o formulário recusa antes do banco
	w = e.do(http.MethodPost, "/api/public/bookings", "", e.bookingRequest(date, "10:00"))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode[errBody](t, w).Fields, "time")
	assert.Len(t, e.db.bookings, 1)
}

func TestPublicCreateBookingMalformed(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/public/bookings", "", map[string]any{"barber_id": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode[errBody](t, w).Code)
}

func TestPublicCreateBookingLostRace(t *testing.T) {
	e := newTestEnv(t)
	e.db.lostRace = true

	w := e.do(http.MethodPost, "/api/public/bookings", "", e.bookingRequest(futureDate(5), "10:00"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_taken", decode[errBody](t, w).Code)
}
