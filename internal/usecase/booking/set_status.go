package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const maxBatch = 200

type SetStatus struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewSetStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	m *metrics.Metrics,
) *SetStatus {
	return &SetStatus{
		repo:    repo,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

// Execute moves every booking in ids to status, or none of them. A single
// id is a batch of one.
func (uc *SetStatus) Execute(
	ctx context.Context,
	actor uuid.UUID,
	scope access.Scope,
	ids []uuid.UUID,
	status string,
) ([]models.Booking, error) {

	target, err := domain.ParseTarget(status)
	if err != nil {
		return nil, err
	}

	ids = dedupe(ids)
	switch {
	case len(ids) == 0:
		return nil, httperr.ErrBusiness("no_bookings_selected")
	case len(ids) > maxBatch:
		return nil, httperr.ErrBusiness("batch_too_large")
	}

	if scope.Empty() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	now := uc.now()
	updated, err := uc.repo.TransitionBookings(ctx, scope, ids, func(b *models.Booking) error {
		return domain.Transition(b, target, now)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Transitioned(string(target), len(updated))
	for i := range updated {
		b := &updated[i]
		uc.audit.Dispatch(audit.Event{
			BarbershopID: b.BarbershopID,
			UserID:       &actor,
			Action:       "booking_" + string(target),
			Entity:       "booking",
			EntityID:     &b.ID,
		})
	}

	return updated, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
