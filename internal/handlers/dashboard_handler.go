package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/dashboard"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type DashboardHandler struct {
	stats dashboard.Stats
	tz    string
	log   *zap.Logger
}

// NewDashboardHandler: tz decides which calendar day counts as today.
func NewDashboardHandler(stats dashboard.Stats, tz string, log *zap.Logger) *DashboardHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardHandler{stats: stats, tz: tz, log: log}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	today := timezone.NowIn(h.tz).Format(timezone.DateLayout)
	summary, err := dashboard.For(p, h.stats, today).Summary(c.Request.Context())
	if err != nil {
		h.log.Error("dashboard failed", zap.String("role", string(p.Role)), zap.Error(err))
		httperr.Write(c, http.StatusServiceUnavailable, "dashboard_unavailable", "Não foi possível carregar o painel.")
		return
	}
	c.JSON(http.StatusOK, summary)
}
