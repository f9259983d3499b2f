package staff

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Accounts interface {
	CreateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CreateBarber(ctx context.Context, b *models.Barber, shopIDs []uuid.UUID) error
}

// ======================================================
// INPUT
// ======================================================

type CreateBarberAccountInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	Specialties []string

	BarbershopIDs []uuid.UUID
	CreatedBy     uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

// CreateBarberAccount writes the login first and the barber second. The
// two writes are not in one transaction, so a failed second write is
// undone by deleting the login.
type CreateBarberAccount struct {
	accounts Accounts
	audit    *audit.Dispatcher
	log      *zap.Logger
	cost     int
}

func NewCreateBarberAccount(
	accounts Accounts,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateBarberAccount {
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateBarberAccount{
		accounts: accounts,
		audit:    audit,
		log:      log,
		cost:     bcrypt.DefaultCost,
	}
}

func (uc *CreateBarberAccount) Execute(
	ctx context.Context,
	in CreateBarberAccountInput,
) (*models.Barber, error) {

	if len(in.BarbershopIDs) == 0 {
		return nil, httperr.ErrBusiness("barbershop_required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	shopID := in.BarbershopIDs[0]

	// --------------------------------------------------
	// 1. Login
	// --------------------------------------------------
	user := &models.User{
		BarbershopID: &shopID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        in.Phone,
		Role:         string(access.RoleBarber),
	}
	if err := uc.accounts.CreateUser(ctx, user); err != nil {
		if httperr.IsUniqueViolation(err, "") {
			return nil, httperr.ErrBusiness("email_taken")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 2. Barbeiro
	// --------------------------------------------------
	barber := &models.Barber{
		UserID:      &user.ID,
		Name:        user.Name,
		Email:       email,
		Phone:       in.Phone,
		Specialties: in.Specialties,
	}
	if barber.Specialties == nil {
		barber.Specialties = []string{}
	}

	if err := uc.accounts.CreateBarber(ctx, barber, in.BarbershopIDs); err != nil {
		if delErr := uc.accounts.DeleteUser(ctx, user.ID); delErr != nil {
			uc.log.Error("orphan barber login left behind",
				zap.String("user_id", user.ID.String()),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shopID,
		UserID:       &in.CreatedBy,
		Action:       "barber_created",
		Entity:       "barber",
		EntityID:     &barber.ID,
	})

	return barber, nil
}
