package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewGetAvailability(repo domain.Repository, log *zap.Logger) *GetAvailability {
	if log == nil {
		log = zap.NewNop()
	}
	return &GetAvailability{repo: repo, log: log}
}

// Execute returns the free grid slots of a barber on date. On a store
// failure it still returns an empty, non-nil list next to the error.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]string, error) {

	if _, err := time.Parse(timezone.DateLayout, date); err != nil {
		return []string{}, httperr.ErrBusiness("invalid_date")
	}

	taken, err := uc.repo.ListScheduledTimes(ctx, barberID, date)
	if err != nil {
		uc.log.Error("availability lookup failed",
			zap.String("barber_id", barberID.String()),
			zap.String("date", date),
			zap.Error(err),
		)
		return []string{}, err
	}

	return domain.AvailableSlots(taken), nil
}

// Source adapts Execute to the booking form.
func (uc *GetAvailability) Source() domain.SlotSource {
	return uc.Execute
}
