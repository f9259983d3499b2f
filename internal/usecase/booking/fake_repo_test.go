package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// memRepo mimics the postgres repository, including the partial unique
// index on scheduled (barber, date, time).
type memRepo struct {
	mu sync.Mutex

	shops    map[uuid.UUID]models.Barbershop
	barbers  map[uuid.UUID]models.Barber
	links    map[uuid.UUID][]uuid.UUID // barber -> shops
	services map[uuid.UUID]models.Service
	bookings []models.Booking

	readErr   error
	writeErr  error
	staleRead bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		shops:    map[uuid.UUID]models.Barbershop{},
		barbers:  map[uuid.UUID]models.Barber{},
		links:    map[uuid.UUID][]uuid.UUID{},
		services: map[uuid.UUID]models.Service{},
	}
}

func (r *memRepo) addShop(s models.Barbershop) models.Barbershop {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shops[s.ID] = s
	return s
}

func (r *memRepo) addBarber(b models.Barber, shops ...uuid.UUID) models.Barber {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.barbers[b.ID] = b
	r.links[b.ID] = shops
	return b
}

func (r *memRepo) addService(s models.Service) models.Service {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return s
}

func (r *memRepo) GetBarbershop(_ context.Context, id uuid.UUID) (*models.Barbershop, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	s, ok := r.shops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *memRepo) GetBarberInShop(_ context.Context, shopID, barberID uuid.UUID) (*models.Barber, error) {
	b, ok := r.barbers[barberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, s := range r.links[barberID] {
		if s == shopID {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) GetService(_ context.Context, shopID, serviceID uuid.UUID) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || s.BarbershopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *memRepo) ListScheduledTimes(_ context.Context, barberID uuid.UUID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	if r.staleRead {
		return nil, nil
	}
	var out []string
	for _, b := range r.bookings {
		if b.BarberID == barberID && b.Date == date && b.Status == string(domain.StatusScheduled) {
			out = append(out, b.Time)
		}
	}
	return out, nil
}

func (r *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	for _, x := range r.bookings {
		if x.BarberID == b.BarberID && x.Date == b.Date && x.Time == b.Time &&
			x.Status == string(domain.StatusScheduled) {
			return &pgconn.PgError{Code: "23505", ConstraintName: SlotIndex}
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *memRepo) inScope(scope access.Scope, b models.Booking) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.AdminID != nil:
		s := r.shops[b.BarbershopID]
		return s.AdminID != nil && *s.AdminID == *scope.AdminID
	case scope.BarberUserID != nil:
		bb := r.barbers[b.BarberID]
		return bb.UserID != nil && *bb.UserID == *scope.BarberUserID
	case scope.ClientPhone != "":
		return b.ClientPhone == scope.ClientPhone
	}
	return false
}

func (r *memRepo) ListBookings(_ context.Context, scope access.Scope, f domain.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	out := []models.Booking{}
	for _, b := range r.bookings {
		if !r.inScope(scope, b) || b.Date < f.From || b.Date > f.To {
			continue
		}
		if f.BarberID != nil && b.BarberID != *f.BarberID {
			continue
		}
		if f.Status != nil && b.Status != string(*f.Status) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *memRepo) TransitionBookings(
	_ context.Context,
	scope access.Scope,
	ids []uuid.UUID,
	fn func(*models.Booking) error,
) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return nil, r.writeErr
	}

	idx := make([]int, 0, len(ids))
	for _, id := range ids {
		found := -1
		for i, b := range r.bookings {
			if b.ID == id && r.inScope(scope, b) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		idx = append(idx, found)
	}

	staged := make([]models.Booking, len(idx))
	for n, i := range idx {
		staged[n] = r.bookings[i]
		if err := fn(&staged[n]); err != nil {
			return nil, err
		}
	}
	for n, i := range idx {
		r.bookings[i] = staged[n]
	}
	return staged, nil
}

func (r *memRepo) find(id uuid.UUID) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return b
		}
	}
	return models.Booking{}
}

var errStoreDown = errors.New("store unavailable")
