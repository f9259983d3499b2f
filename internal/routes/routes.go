package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
	ucReport "github.com/BruksfildServices01/barbershop-booking/internal/usecase/report"
	ucStaff "github.com/BruksfildServices01/barbershop-booking/internal/usecase/staff"
)

// Deps are the long-lived pieces main owns and closes.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	CatalogCache catalog.Cache
	Revocations  session.Revocations
	Audit        *audit.Dispatcher
	Notifier     *notify.Dispatcher
	Objects      storage.ObjectStore
	Limiter      *middleware.RateLimiter
}

// NewEngine builds the gin engine. Only TrustedProxies may set the client
// IP through X-Forwarded-For; everyone else is keyed by the socket peer.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)
	auditLogs := audit.New(d.DB)

	authenticator := session.NewAuthenticator(cfg.JWTSecret, cfg.JWTExpiry, d.Revocations)

	// ======================================================
	// USE CASES
	// ======================================================
	loadCatalogUC := ucCatalog.NewLoadCatalog(catalogRepo, d.CatalogCache, d.Log).WithBaseDomain(cfg.BaseDomain)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, d.Log)
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		availabilityUC,
		d.Audit,
		d.Notifier,
		d.Metrics,
		d.Log,
	)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	setStatusUC := ucBooking.NewSetStatus(bookingRepo, d.Audit, d.Metrics)

	reportUC := ucReport.NewBuildBookingsReport(listBookingsUC)
	barberAccountUC := ucStaff.NewCreateBarberAccount(accountRepo, d.Audit, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accountRepo, authenticator, d.Log)
	meHandler := handlers.NewMeHandler(accountRepo, d.Objects, d.Log)
	publicHandler := handlers.NewPublicHandler(loadCatalogUC, availabilityUC, createBookingUC)
	dashboardHandler := handlers.NewDashboardHandler(statsRepo, cfg.DefaultTimezone, d.Log)

	barbershopHandler := handlers.NewBarbershopHandler(catalogRepo, loadCatalogUC, d.Audit, cfg.DefaultTimezone)
	barberHandler := handlers.NewBarberHandler(catalogRepo, loadCatalogUC, barberAccountUC, d.Audit)
	serviceHandler := handlers.NewServiceHandler(catalogRepo, loadCatalogUC)

	bookingHandler := handlers.NewBookingHandler(listBookingsUC, createBookingUC, setStatusUC, loadCatalogUC)
	reportHandler := handlers.NewReportHandler(reportUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogs, loadCatalogUC)

	// ======================================================
	// OPERAÇÃO
	// ======================================================
	r.GET("/health", health(d.DB))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	// sem bucket os avatares ficam em memória e são servidos daqui
	if mem, ok := d.Objects.(*storage.MemoryStore); ok {
		r.GET("/uploads/*key", uploads(mem))
	}

	limited := d.Limiter.Limit()
	staff := middleware.RequireRole(access.RoleSuperAdmin, access.RoleAdmin, access.RoleBarber)
	managers := middleware.RequireRole(access.RoleSuperAdmin, access.RoleAdmin)
	superAdmin := middleware.RequireRole(access.RoleSuperAdmin)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", limited, authHandler.Login)

		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbershops", publicHandler.ListBarbershops)
			publicAPI.GET("/barbershops/by-host", publicHandler.ByHost)
			publicAPI.GET("/barbershops/:id/catalog", publicHandler.Catalog)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/bookings", limited, publicHandler.CreateBooking)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(authenticator))
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me/avatar", meHandler.UploadAvatar)
			secured.GET("/dashboard", dashboardHandler.Get)

			// barbearias
			secured.GET("/barbershops", managers, barbershopHandler.List)
			secured.POST("/barbershops", superAdmin, barbershopHandler.Create)
			secured.PATCH("/barbershops/:id", managers, barbershopHandler.Update)
			secured.DELETE("/barbershops/:id", managers, barbershopHandler.Delete)

			// barbeiros
			secured.GET("/barbershops/:id/barbers", staff, barberHandler.List)
			secured.POST("/barbershops/:id/barbers", managers, barberHandler.Create)
			secured.PATCH("/barbers/:id", managers, barberHandler.Update)
			secured.DELETE("/barbers/:id", managers, barberHandler.Delete)
			secured.GET("/barbers/:id/working-hours", staff, barberHandler.GetWorkingHours)
			secured.PUT("/barbers/:id/working-hours", staff, barberHandler.ReplaceWorkingHours)

			// serviços
			secured.GET("/barbershops/:id/services", staff, serviceHandler.List)
			secured.POST("/barbershops/:id/services", managers, serviceHandler.Create)
			secured.PATCH("/services/:id", managers, serviceHandler.Update)
			secured.DELETE("/services/:id", managers, serviceHandler.Delete)

			// agendamentos
			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", staff, bookingHandler.Create)
			secured.PATCH("/bookings/status", staff, bookingHandler.SetStatusBatch)
			secured.PATCH("/bookings/:id/status", staff, bookingHandler.SetStatus)

			secured.GET("/reports/bookings", staff, reportHandler.Bookings)
			secured.GET("/audit-logs", managers, auditLogsHandler.List)
		}
	}
}

func uploads(mem *storage.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := mem.Get(strings.TrimPrefix(c.Param("key"), "/"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, http.DetectContentType(body), body)
	}
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
