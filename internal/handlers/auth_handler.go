package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
)

type AuthHandler struct {
	users account.Users
	auth  *session.Authenticator
	log   *zap.Logger
}

func NewAuthHandler(users account.Users, auth *session.Authenticator, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{users: users, auth: auth, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe e-mail e senha.")
		return
	}

	user, err := h.users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil && !isNotFound(err) {
		h.log.Error("login lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	// user nil cai no mesmo caminho da senha errada
	s, token, err := h.auth.Login(user, req.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}
	if err != nil {
		h.log.Error("token issue failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	p, _ := s.Principal()
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: p.ExpiresAt,
		User:      user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	s := session.From(c)
	if err := h.auth.SignOut(c.Request.Context(), s); err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			httperr.Unauthorized(c, "unauthenticated", "Faça login para continuar.")
			return
		}
		h.log.Error("sign out failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Não foi possível encerrar a sessão.")
		return
	}
	c.Status(http.StatusNoContent)
}
