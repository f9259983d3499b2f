package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Users interface {
	// FindUserByEmail matches the trimmed, lowercased address.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser preloads the user's barbershop, if any.
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetAvatarURL(ctx context.Context, id uuid.UUID, url string) error
}
