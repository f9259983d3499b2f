package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
)

// ======================================================
// ERROS DE NEGÓCIO
// ======================================================

type businessReply struct {
	status  int
	message string
}

var businessReplies = map[string]businessReply{
	"barbershop_not_found": {http.StatusNotFound, "Barbearia não encontrada."},
	"barber_not_found":     {http.StatusNotFound, "Barbeiro não encontrado."},
	"service_not_found":    {http.StatusNotFound, "Serviço não encontrado."},
	"booking_not_found":    {http.StatusNotFound, "Agendamento não encontrado."},
	"user_not_found":       {http.StatusNotFound, "Usuário não encontrado."},

	"slot_taken":    {http.StatusConflict, "Este horário acabou de ser reservado. Escolha outro horário."},
	"email_taken":   {http.StatusConflict, "Este e-mail já está cadastrado."},
	"invalid_state": {http.StatusConflict, "O agendamento já foi concluído ou cancelado."},

	"subdomain_taken":      {http.StatusConflict, "Este subdomínio já está em uso."},
	"custom_domain_taken":  {http.StatusConflict, "Este domínio já está em uso."},
	"barber_has_bookings":  {http.StatusConflict, "O barbeiro possui agendamentos e não pode ser excluído."},
	"service_has_bookings": {http.StatusConflict, "O serviço possui agendamentos e não pode ser excluído."},

	"invalid_status":       {http.StatusBadRequest, "Status inválido."},
	"invalid_date":         {http.StatusBadRequest, "Data inválida."},
	"invalid_month":        {http.StatusBadRequest, "Mês inválido."},
	"invalid_range":        {http.StatusBadRequest, "Período inválido."},
	"invalid_host":         {http.StatusBadRequest, "Informe o endereço da barbearia."},
	"no_bookings_selected": {http.StatusBadRequest, "Selecione ao menos um agendamento."},
	"batch_too_large":      {http.StatusBadRequest, "Muitos agendamentos selecionados de uma vez."},
	"barbershop_required":  {http.StatusBadRequest, "Vincule o barbeiro a pelo menos uma barbearia."},

	"forbidden": {http.StatusForbidden, "Você não tem permissão para esta ação."},
}

// respondError turns a use case error into the JSON reply the front end
// expects. Unknown errors become a 500.
func respondError(c *gin.Context, err error) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.Validation(c, ve.Fields)
		return
	}
	if code, ok := httperr.BusinessCode(err); ok {
		if r, known := businessReplies[code]; known {
			httperr.Write(c, r.status, code, r.message)
			return
		}
		httperr.BadRequest(c, code, "Não foi possível concluir a operação.")
		return
	}
	_ = c.Error(err)
	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ======================================================
// CONTEXTO
// ======================================================

func currentPrincipal(c *gin.Context) (session.Principal, bool) {
	p, ok := session.Current(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Faça login para continuar.")
	}
	return p, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return nil, false
	}
	return &id, true
}

// canManageShop: super admins manage every shop, admins the shops they own.
func canManageShop(p session.Principal, shop *models.Barbershop) bool {
	switch p.Role {
	case access.RoleSuperAdmin:
		return true
	case access.RoleAdmin:
		return shop != nil && shop.AdminID != nil && *shop.AdminID == p.UserID
	}
	return false
}

func adminFilter(p session.Principal) *uuid.UUID {
	if p.Role == access.RoleSuperAdmin {
		return nil
	}
	id := p.UserID
	return &id
}

// managedShop loads shop id and checks p may manage it, writing the error
// reply when not.
func managedShop(
	c *gin.Context,
	shops shopGetter,
	p session.Principal,
	id uuid.UUID,
) (*models.Barbershop, bool) {

	shop, err := shops.GetBarbershop(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		respondError(c, err)
		return nil, false
	}
	if !canManageShop(p, shop) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
		return nil, false
	}
	return shop, true
}

type shopGetter interface {
	GetBarbershop(ctx context.Context, id uuid.UUID) (*models.Barbershop, error)
}
