package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/avatar"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
)

type MeHandler struct {
	users   account.Users
	objects storage.ObjectStore
	log     *zap.Logger
	now     func() time.Time
}

func NewMeHandler(users account.Users, objects storage.ObjectStore, log *zap.Logger) *MeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MeHandler{users: users, objects: objects, log: log, now: time.Now}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), p.UserID)
	if err != nil {
		if isNotFound(err) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"barbershop": user.Barbershop,
	})
}

// UploadAvatar takes a multipart "avatar" file and stores it as a square
// WebP.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, avatar.MaxUpload+(1<<20))
	fh, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "avatar_required", "Envie uma imagem no campo avatar.")
		return
	}
	if fh.Size > avatar.MaxUpload {
		httperr.BadRequest(c, "avatar_too_large", "A imagem deve ter no máximo 5 MB.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "avatar_required", "Envie uma imagem no campo avatar.")
		return
	}
	defer f.Close()

	img, err := avatar.Process(f)
	switch {
	case errors.Is(err, avatar.ErrTooLarge):
		httperr.BadRequest(c, "avatar_too_large", "A imagem deve ter no máximo 5 MB.")
		return
	case errors.Is(err, avatar.ErrUnsupported):
		httperr.BadRequest(c, "avatar_unsupported_format", "Use uma imagem JPEG, PNG ou WebP.")
		return
	case err != nil:
		respondError(c, err)
		return
	}

	key := fmt.Sprintf("avatars/%s-%d.webp", p.UserID, h.now().Unix())
	url, err := h.objects.Put(c.Request.Context(), key, img, avatar.ContentType)
	if err != nil {
		h.log.Error("avatar upload failed", zap.Error(err), zap.String("key", key))
		httperr.Write(c, http.StatusBadGateway, "avatar_upload_failed", "Não foi possível salvar a imagem.")
		return
	}

	if err := h.users.SetAvatarURL(c.Request.Context(), p.UserID, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
