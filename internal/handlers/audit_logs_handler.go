package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	cataloguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type AuditReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs    AuditReader
	catalog *cataloguc.LoadCatalog
}

func NewAuditLogsHandler(logs AuditReader, catalog *cataloguc.LoadCatalog) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, catalog: catalog}
}

// maxAuditPage keeps (page-1)*limit far from overflowing the offset.
const maxAuditPage = 10000

func (h *AuditLogsHandler) List(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	if page > maxAuditPage {
		page = maxAuditPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Escopo (super admin vê tudo, admin só as suas)
	// --------------------------------------------------

	if p.Role == access.RoleSuperAdmin {
		f.All = true
	} else {
		shops, err := h.catalog.ListBarbershops(c.Request.Context(), adminFilter(p))
		if err != nil {
			httperr.EmptyList(c, "audit_list_failed", "Erro ao listar logs.")
			return
		}
		for _, s := range shops {
			f.BarbershopIDs = append(f.BarbershopIDs, s.ID)
		}
	}

	if raw := c.Query("barbershop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_barbershop_id", "Identificador inválido.")
			return
		}
		if !f.All && !containsID(f.BarbershopIDs, id) {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
			return
		}
		f.All = false
		f.BarbershopIDs = []uuid.UUID{id}
	}

	// --------------------------------------------------
	// Filtros de data
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		if from, err := time.Parse(timezone.DateLayout, raw); err == nil {
			f.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err := time.Parse(timezone.DateLayout, raw); err == nil {
			f.To = &to
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.EmptyList(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
