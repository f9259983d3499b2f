package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// SlotIndex is the partial unique index on scheduled bookings.
const SlotIndex = "ux_bookings_barber_slot"

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uuid.UUID
	BarberID     uuid.UUID
	ServiceID    uuid.UUID

	Date string
	Time string

	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string

	// CreatedBy is set when staff books on behalf of a client.
	CreatedBy *uuid.UUID
}

type CreateBookingResult struct {
	Booking      *models.Booking     `json:"booking"`
	Confirmation domain.Confirmation `json:"confirmation"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	slots    *GetAvailability
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	slots *GetAvailability,
	audit *audit.Dispatcher,
	notifier *notify.Dispatcher,
	m *metrics.Metrics,
	log *zap.Logger,
) *CreateBooking {
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateBooking{
		repo:     repo,
		slots:    slots,
		audit:    audit,
		notifier: notifier,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// Barbearia, barbeiro e serviço pertencem ao mesmo tenant
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershop(ctx, in.BarbershopID)
	if err != nil {
		return nil, notFoundAs(err, "barbershop_not_found")
	}

	barber, err := uc.repo.GetBarberInShop(ctx, shop.ID, in.BarberID)
	if err != nil {
		return nil, notFoundAs(err, "barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, "service_not_found")
	}

	// --------------------------------------------------
	// Mesmas regras do formulário
	// --------------------------------------------------
	sub, err := uc.validate(ctx, shop, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persistência
	// --------------------------------------------------
	b := &models.Booking{
		ClientName:   sub.ClientName,
		ClientPhone:  validators.DigitsOnly(sub.ClientPhone),
		ClientEmail:  sub.ClientEmail,
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ServiceID:    service.ID,
		Date:         sub.Date,
		Time:         sub.Time,
		Status:       string(domain.InitialStatus()),
		Notes:        sub.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsUniqueViolation(err, SlotIndex) {
			uc.metrics.SlotConflict()
			uc.audit.Dispatch(audit.Event{
				BarbershopID: shop.ID,
				UserID:       in.CreatedBy,
				Action:       "booking_conflict",
				Entity:       "booking",
				Metadata:     map[string]string{"date": b.Date, "time": b.Time, "barber_id": barber.ID.String()},
			})
			return nil, httperr.ErrBusiness("slot_taken")
		}
		uc.log.Error("create booking failed", zap.Error(err))
		return nil, err
	}

	b.Barbershop = *shop
	b.Barber = *barber
	b.Service = *service

	// --------------------------------------------------
	// Confirmação e efeitos assíncronos
	// --------------------------------------------------
	conf := domain.BuildConfirmation(shop, barber, service, b.Date, b.Time)

	uc.metrics.BookingCreated()
	uc.notifier.Notify(notify.BookingCreated{
		BookingID:    b.ID,
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		ServiceID:    service.ID,
		Date:         b.Date,
		Time:         b.Time,
		ClientName:   b.ClientName,
		ClientPhone:  b.ClientPhone,
		Message:      conf.Message,
		WhatsAppURL:  conf.WhatsAppURL,
		CreatedAt:    uc.now(),
	})
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.CreatedBy,
		Action:       "booking_created",
		Entity:       "booking",
		EntityID:     &b.ID,
	})

	return &CreateBookingResult{Booking: b, Confirmation: conf}, nil
}

// validate runs a fresh form through every guard.
func (uc *CreateBooking) validate(
	ctx context.Context,
	shop *models.Barbershop,
	in CreateBookingInput,
) (domain.Submission, error) {

	form := domain.NewForm(uc.slots.Source(), shop.Timezone, uc.now)

	form.SelectShop(shop.ID)
	if err := form.SelectBarber(ctx, in.BarberID); err != nil {
		return domain.Submission{}, err
	}
	form.SelectService(in.ServiceID)
	if err := form.SelectDate(ctx, in.Date); err != nil {
		if _, ok := httperr.AsValidation(err); !ok {
			return domain.Submission{}, err
		}
	}
	form.SelectTime(in.Time)
	form.SetClientInfo(in.ClientName, in.ClientPhone, in.ClientEmail, in.Notes)

	return form.Submit()
}

func notFoundAs(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
