package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
)

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware rebuilds the request's session from its bearer token.
func AuthMiddleware(auth *session.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			c.Abort()
			return
		}

		raw, ok := BearerToken(c)
		if !ok {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			c.Abort()
			return
		}

		s, err := auth.FromToken(c.Request.Context(), raw)
		switch {
		case errors.Is(err, session.ErrRevokedToken):
			httperr.Unauthorized(c, "session_ended", "Sessão encerrada. Faça login novamente.")
			c.Abort()
			return
		case errors.Is(err, session.ErrInvalidToken):
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			c.Abort()
			return
		case err != nil:
			httperr.Write(c, http.StatusServiceUnavailable, "session_unavailable", "Não foi possível validar a sessão.")
			c.Abort()
			return
		}

		session.Attach(c, s)
		c.Next()
	}
}

// RequireRole lets through only authenticated principals holding one of
// roles.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	allowed := make(map[access.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		p, ok := session.Current(c)
		if !ok {
			httperr.Unauthorized(c, "unauthenticated", "Faça login para continuar.")
			c.Abort()
			return
		}
		if !allowed[p.Role] {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para esta ação.")
			c.Abort()
			return
		}
		c.Next()
	}
}
