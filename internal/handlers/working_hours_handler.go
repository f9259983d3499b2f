package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsWorking bool   `json:"is_working"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

func (h *BarberHandler) GetWorkingHours(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}
	if !mayEditHours(p, barber) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
		return
	}

	hours, err := h.store.ListWorkingHours(c.Request.Context(), barber.ID)
	if err != nil {
		httperr.EmptyList(c, "failed_to_get_working_hours", "Erro ao carregar o horário de trabalho.")
		return
	}
	httpresp.List(c, hours)
}

// ReplaceWorkingHours swaps the whole week; days left out are days off.
func (h *BarberHandler) ReplaceWorkingHours(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}
	if !mayEditHours(p, barber) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if fields := validateWeek(req.Days); len(fields) > 0 {
		httperr.Validation(c, fields)
		return
	}

	hours := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		wh := models.WorkingHours{
			BarberID:  barber.ID,
			Weekday:   d.Weekday,
			IsWorking: d.IsWorking,
		}
		if d.IsWorking {
			wh.StartTime, wh.EndTime = d.StartTime, d.EndTime
		}
		hours = append(hours, wh)
	}

	if err := h.store.ReplaceWorkingHours(c.Request.Context(), barber.ID, hours); err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, hours)
}

func validateWeek(days []WorkingDayConfig) map[string]string {
	fields := map[string]string{}
	seen := map[int]bool{}

	for i, d := range days {
		key := fmt.Sprintf("days.%d", i)
		if seen[d.Weekday] {
			fields[key] = "Dia da semana repetido."
			continue
		}
		seen[d.Weekday] = true

		if !d.IsWorking {
			continue
		}
		start, err1 := time.Parse("15:04", d.StartTime)
		end, err2 := time.Parse("15:04", d.EndTime)
		if err1 != nil || err2 != nil {
			fields[key] = "Use o formato HH:MM."
			continue
		}
		if !start.Before(end) {
			fields[key] = "O início deve ser antes do fim."
		}
	}
	return fields
}
