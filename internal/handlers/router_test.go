package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
	reportuc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/report"
	staffuc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/staff"
)

const testPassword = "segredo123"

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.RegisterBindings(); err != nil {
		panic(err)
	}
}

type testEnv struct {
	db      *memDB
	cache   *countingCache
	objects *storage.MemoryStore
	auth    *session.Authenticator
	router  *gin.Engine

	shop   models.Barbershop
	barber models.Barber
	cut    models.Service
}

const testBaseDomain = "agendabarber.com.br"

// newTestEnv wires the handlers the same way routes does, over memDB.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	e := &testEnv{
		db:      newMemDB(),
		cache:   &countingCache{},
		objects: &storage.MemoryStore{BaseURL: "https://cdn.test"},
		auth:    session.NewAuthenticator("test-secret", time.Hour, nil),
	}

	load := cataloguc.NewLoadCatalog(e.db, e.cache, nil).WithBaseDomain(testBaseDomain)
	avail := bookinguc.NewGetAvailability(e.db, nil)
	create := bookinguc.NewCreateBooking(e.db, avail, nil, nil, nil, nil)
	list := bookinguc.NewListBookings(e.db)
	status := bookinguc.NewSetStatus(e.db, nil, nil)
	accounts := staffuc.NewCreateBarberAccount(e.db, nil, nil)

	authH := NewAuthHandler(e.db, e.auth, nil)
	meH := NewMeHandler(e.db, e.objects, nil)
	publicH := NewPublicHandler(load, avail, create)
	dashH := NewDashboardHandler(e.db, "America/Sao_Paulo", nil)
	shopH := NewBarbershopHandler(e.db, load, nil, "America/Sao_Paulo")
	barberH := NewBarberHandler(e.db, load, accounts, nil)
	serviceH := NewServiceHandler(e.db, load)
	bookingH := NewBookingHandler(list, create, status, load)
	reportH := NewReportHandler(reportuc.NewBuildBookingsReport(list), nil)
	auditH := NewAuditLogsHandler(e.db, load)

	staff := middleware.RequireRole(access.RoleSuperAdmin, access.RoleAdmin, access.RoleBarber)
	managers := middleware.RequireRole(access.RoleSuperAdmin, access.RoleAdmin)
	superAdmin := middleware.RequireRole(access.RoleSuperAdmin)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", authH.Login)
	api.GET("/public/barbershops", publicH.ListBarbershops)
	api.GET("/public/barbershops/by-host", publicH.ByHost)
	api.GET("/public/barbershops/:id/catalog", publicH.Catalog)
	api.GET("/public/availability", publicH.Availability)
	api.POST("/public/bookings", publicH.CreateBooking)

	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(e.auth))
	secured.POST("/auth/logout", authH.Logout)
	secured.GET("/me", meH.GetMe)
	secured.PUT("/me/avatar", meH.UploadAvatar)
	secured.GET("/dashboard", dashH.Get)
	secured.GET("/barbershops", managers, shopH.List)
	secured.POST("/barbershops", superAdmin, shopH.Create)
	secured.PATCH("/barbershops/:id", managers, shopH.Update)
	secured.DELETE("/barbershops/:id", managers, shopH.Delete)
	secured.GET("/barbershops/:id/barbers", staff, barberH.List)
	secured.POST("/barbershops/:id/barbers", managers, barberH.Create)
	secured.PATCH("/barbers/:id", managers, barberH.Update)
	secured.DELETE("/barbers/:id", managers, barberH.Delete)
	secured.GET("/barbers/:id/working-hours", staff, barberH.GetWorkingHours)
	secured.PUT("/barbers/:id/working-hours", staff, barberH.ReplaceWorkingHours)
	secured.GET("/barbershops/:id/services", staff, serviceH.List)
	secured.POST("/barbershops/:id/services", managers, serviceH.Create)
	secured.PATCH("/services/:id", managers, serviceH.Update)
	secured.DELETE("/services/:id", managers, serviceH.Delete)
	secured.GET("/bookings", bookingH.List)
	secured.POST("/bookings", staff, bookingH.Create)
	secured.PATCH("/bookings/status", staff, bookingH.SetStatusBatch)
	secured.PATCH("/bookings/:id/status", staff, bookingH.SetStatus)
	secured.GET("/reports/bookings", staff, reportH.Bookings)
	secured.GET("/audit-logs", managers, auditH.List)
	e.router = r

	e.seed()
	return e
}

// seed: one shop owned by an admin, one barber with a login, one service.
func (e *testEnv) seed() {
	admin := e.addUser("dono@barbearia.com", access.RoleAdmin, nil)

	e.shop = models.Barbershop{
		ID:       uuid.New(),
		Name:     "Barbearia Central",
		Phone:    "(11) 98765-4321",
		AdminID:  &admin.ID,
		Timezone: "America/Sao_Paulo",
	}
	e.db.shops[e.shop.ID] = e.shop

	barberUser := e.addUser("joao@barbearia.com", access.RoleBarber, &e.shop.ID)
	e.barber = models.Barber{ID: uuid.New(), UserID: &barberUser.ID, Name: "João"}
	e.db.barbers[e.barber.ID] = e.barber
	e.db.links[e.barber.ID] = []uuid.UUID{e.shop.ID}

	e.cut = models.Service{ID: uuid.New(), BarbershopID: e.shop.ID, Name: "Corte", DurationMin: 30, Price: 45}
	e.db.services[e.cut.ID] = e.cut
}

func (e *testEnv) addUser(email string, role access.Role, shopID *uuid.UUID) models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	u := models.User{
		ID:           uuid.New(),
		BarbershopID: shopID,
		Name:         email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(role),
	}
	e.db.users[u.ID] = u
	return u
}

func (e *testEnv) tokenFor(t *testing.T, email string) string {
	t.Helper()
	u, err := e.db.FindUserByEmail(t.Context(), email)
	require.NoError(t, err)
	_, token, err := e.auth.Login(u, testPassword)
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string  { return e.tokenFor(t, "dono@barbearia.com") }
func (e *testEnv) barberToken(t *testing.T) string { return e.tokenFor(t, "joao@barbearia.com") }

func (e *testEnv) superToken(t *testing.T) string {
	t.Helper()
	if _, err := e.db.FindUserByEmail(t.Context(), "root@barbearia.com"); err != nil {
		e.addUser("root@barbearia.com", access.RoleSuperAdmin, nil)
	}
	return e.tokenFor(t, "root@barbearia.com")
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// addBooking stores a booking straight in the fake.
func (e *testEnv) addBooking(date, at, status string) models.Booking {
	b := models.Booking{
		ID:           uuid.New(),
		ClientName:   "Maria Silva",
		ClientPhone:  "11987654321",
		BarbershopID: e.shop.ID,
		BarberID:     e.barber.ID,
		ServiceID:    e.cut.ID,
		Date:         date,
		Time:         at,
		Status:       status,
	}
	e.db.bookings = append(e.db.bookings, b)
	return b
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errBody struct {
	Code   string            `json:"error_code"`
	Fields map[string]string `json:"fields"`
	Data   []any             `json:"data"`
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

