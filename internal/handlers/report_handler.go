package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/report"
)

type ReportHandler struct {
	build *report.BuildBookingsReport
	log   *zap.Logger
}

func NewReportHandler(build *report.BuildBookingsReport, log *zap.Logger) *ReportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportHandler{build: build, log: log}
}

// Bookings answers JSON, or the booking rows as CSV with format=csv.
func (h *ReportHandler) Bookings(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	from, to := c.Query("from"), c.Query("to")
	r, err := h.build.Execute(c.Request.Context(), p.Scope(), from, to)
	if err != nil {
		if _, business := httperr.BusinessCode(err); business {
			respondError(c, err)
			return
		}
		h.log.Error("bookings report failed", zap.Error(err))
		httperr.Write(c, http.StatusServiceUnavailable, "report_unavailable", "Não foi possível gerar o relatório.")
		return
	}

	if c.Query("format") != "csv" {
		c.JSON(http.StatusOK, r)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="agendamentos_%s_%s.csv"`, from, to))
	c.Status(http.StatusOK)
	if err := report.WriteCSV(c.Writer, r); err != nil {
		// cabeçalho já enviado
		h.log.Error("csv export failed", zap.Error(err))
	}
}
