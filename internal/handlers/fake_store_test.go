package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/dashboard"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// memDB stands in for every gorm repository the handlers reach.
type memDB struct {
	mu sync.Mutex

	users    map[uuid.UUID]models.User
	shops    map[uuid.UUID]models.Barbershop
	barbers  map[uuid.UUID]models.Barber
	links    map[uuid.UUID][]uuid.UUID // barber -> shops
	services map[uuid.UUID]models.Service
	hours    map[uuid.UUID][]models.WorkingHours
	bookings []models.Booking
	logs     []models.AuditLog

	readErr error
	// lostRace makes CreateBooking fail as if another request took the slot
	lostRace bool
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uuid.UUID]models.User{},
		shops:    map[uuid.UUID]models.Barbershop{},
		barbers:  map[uuid.UUID]models.Barber{},
		links:    map[uuid.UUID][]uuid.UUID{},
		services: map[uuid.UUID]models.Service{},
		hours:    map[uuid.UUID][]models.WorkingHours{},
	}
}

var errStoreDown = errors.New("store unavailable")

// ======================================================
// catalog.Store
// ======================================================

func (m *memDB) ListBarbershops(_ context.Context, adminID *uuid.UUID) ([]models.Barbershop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := []models.Barbershop{}
	for _, s := range m.shops {
		if adminID == nil || (s.AdminID != nil && *s.AdminID == *adminID) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memDB) GetBarbershop(_ context.Context, id uuid.UUID) (*models.Barbershop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	s, ok := m.shops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memDB) findShop(match func(models.Barbershop) bool) (*models.Barbershop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	for _, s := range m.shops {
		if match(s) {
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memDB) GetBarbershopBySubdomain(_ context.Context, sub string) (*models.Barbershop, error) {
	return m.findShop(func(s models.Barbershop) bool { return sameHost(s.Subdomain, &sub) })
}

func (m *memDB) GetBarbershopByCustomDomain(_ context.Context, d string) (*models.Barbershop, error) {
	return m.findShop(func(s models.Barbershop) bool { return sameHost(s.CustomDomain, &d) })
}

func sameHost(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// hostTaken mirrors the unique indexes on subdomain and custom_domain.
func (m *memDB) hostTaken(s *models.Barbershop) error {
	for id, x := range m.shops {
		if id == s.ID {
			continue
		}
		if sameHost(x.Subdomain, s.Subdomain) {
			return &pgconn.PgError{Code: "23505", ConstraintName: catalog.SubdomainIndex}
		}
		if sameHost(x.CustomDomain, s.CustomDomain) {
			return &pgconn.PgError{Code: "23505", ConstraintName: catalog.CustomDomainIndex}
		}
	}
	return nil
}

func (m *memDB) ListBarbers(_ context.Context, shopID uuid.UUID) ([]models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Barber{}
	for id, shops := range m.links {
		for _, s := range shops {
			if s == shopID {
				out = append(out, m.barbers[id])
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memDB) ListServices(_ context.Context, shopID uuid.UUID) ([]models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Service{}
	for _, s := range m.services {
		if s.BarbershopID == shopID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memDB) CreateBarbershop(_ context.Context, s *models.Barbershop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hostTaken(s); err != nil {
		return err
	}
	s.ID = uuid.New()
	m.shops[s.ID] = *s
	return nil
}

func (m *memDB) UpdateBarbershop(_ context.Context, s *models.Barbershop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hostTaken(s); err != nil {
		return err
	}
	m.shops[s.ID] = *s
	return nil
}

func (m *memDB) DeleteBarbershop(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shops[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.shops, id)
	return nil
}

func (m *memDB) GetBarber(_ context.Context, id uuid.UUID) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.barbers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	b.Barbershops = nil
	for _, s := range m.links[id] {
		b.Barbershops = append(b.Barbershops, m.shops[s])
	}
	return &b, nil
}

func (m *memDB) UpdateBarber(_ context.Context, b *models.Barber, shopIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *b
	stored.Barbershops = nil
	m.barbers[b.ID] = stored
	if shopIDs != nil {
		m.links[b.ID] = append([]uuid.UUID(nil), shopIDs...)
	}
	return nil
}

func (m *memDB) referenced(match func(models.Booking) bool) bool {
	for _, b := range m.bookings {
		if match(b) {
			return true
		}
	}
	return false
}

func (m *memDB) DeleteBarber(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.barbers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.referenced(func(x models.Booking) bool { return x.BarberID == id }) {
		return httperr.ErrBusiness("barber_has_bookings")
	}
	delete(m.barbers, id)
	delete(m.links, id)
	delete(m.hours, id)
	if b.UserID != nil && m.users[*b.UserID].Role == string(access.RoleBarber) {
		delete(m.users, *b.UserID)
	}
	return nil
}

func (m *memDB) ListWorkingHours(_ context.Context, barberID uuid.UUID) ([]models.WorkingHours, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.WorkingHours{}, m.hours[barberID]...), nil
}

func (m *memDB) ReplaceWorkingHours(_ context.Context, barberID uuid.UUID, hours []models.WorkingHours) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hours[barberID] = append([]models.WorkingHours(nil), hours...)
	return nil
}

func (m *memDB) GetServiceByID(_ context.Context, id uuid.UUID) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memDB) CreateService(_ context.Context, s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.New()
	m.services[s.ID] = *s
	return nil
}

func (m *memDB) UpdateService(_ context.Context, s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[s.ID] = *s
	return nil
}

func (m *memDB) DeleteService(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.referenced(func(x models.Booking) bool { return x.ServiceID == id }) {
		return httperr.ErrBusiness("service_has_bookings")
	}
	delete(m.services, id)
	return nil
}

// ======================================================
// booking.Repository
// ======================================================

func (m *memDB) GetBarberInShop(_ context.Context, shopID, barberID uuid.UUID) (*models.Barber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.barbers[barberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, s := range m.links[barberID] {
		if s == shopID {
			return &b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memDB) GetService(_ context.Context, shopID, serviceID uuid.UUID) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[serviceID]
	if !ok || s.BarbershopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memDB) ListScheduledTimes(_ context.Context, barberID uuid.UUID, date string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []string
	for _, b := range m.bookings {
		if b.BarberID == barberID && b.Date == date && b.Status == string(domain.StatusScheduled) {
			out = append(out, b.Time)
		}
	}
	return out, nil
}

func (m *memDB) CreateBooking(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lostRace {
		return &pgconn.PgError{Code: "23505", ConstraintName: bookinguc.SlotIndex}
	}
	for _, x := range m.bookings {
		if x.BarberID == b.BarberID && x.Date == b.Date && x.Time == b.Time &&
			x.Status == string(domain.StatusScheduled) {
			return &pgconn.PgError{Code: "23505", ConstraintName: bookinguc.SlotIndex}
		}
	}
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memDB) inScope(scope access.Scope, b models.Booking) bool {
	switch {
	case scope.Unrestricted:
		return true
	case scope.AdminID != nil:
		s := m.shops[b.BarbershopID]
		return s.AdminID != nil && *s.AdminID == *scope.AdminID
	case scope.BarberUserID != nil:
		bb := m.barbers[b.BarberID]
		return bb.UserID != nil && *bb.UserID == *scope.BarberUserID
	case scope.ClientPhone != "":
		return b.ClientPhone == scope.ClientPhone
	}
	return false
}

func (m *memDB) ListBookings(_ context.Context, scope access.Scope, f domain.ListFilter) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := []models.Booking{}
	for _, b := range m.bookings {
		if !m.inScope(scope, b) || b.Date < f.From || b.Date > f.To {
			continue
		}
		if f.BarberID != nil && b.BarberID != *f.BarberID {
			continue
		}
		b.Service = m.services[b.ServiceID]
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

func (m *memDB) TransitionBookings(
	_ context.Context,
	scope access.Scope,
	ids []uuid.UUID,
	fn func(*models.Booking) error,
) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := make([]int, 0, len(ids))
	for _, id := range ids {
		found := -1
		for i, b := range m.bookings {
			if b.ID == id && m.inScope(scope, b) {
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
		staged[n] = m.bookings[i]
		if err := fn(&staged[n]); err != nil {
			return nil, err
		}
	}
	for n, i := range idx {
		m.bookings[i] = staged[n]
	}
	return staged, nil
}

// ======================================================
// accounts and users
// ======================================================

func (m *memDB) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.users {
		if x.Email == u.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}
	u.ID = uuid.New()
	m.users[u.ID] = *u
	return nil
}

func (m *memDB) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memDB) CreateBarber(_ context.Context, b *models.Barber, shopIDs []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = uuid.New()
	m.barbers[b.ID] = *b
	m.links[b.ID] = append([]uuid.UUID(nil), shopIDs...)
	return nil
}

func (m *memDB) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memDB) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *memDB) SetAvatarURL(_ context.Context, id uuid.UUID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.AvatarURL = url
	m.users[id] = u
	return nil
}

// ======================================================
// dashboard.Stats and audit listing
// ======================================================

func (m *memDB) Totals(_ context.Context, adminID *uuid.UUID) (dashboard.Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := dashboard.Totals{Bookings: map[string]int64{}}
	for _, s := range m.shops {
		if adminID == nil || (s.AdminID != nil && *s.AdminID == *adminID) {
			t.Barbershops++
		}
	}
	t.Barbers = int64(len(m.barbers))
	for _, b := range m.bookings {
		t.Bookings[b.Status]++
	}
	return t, nil
}

func (m *memDB) Scheduled(ctx context.Context, scope access.Scope, from string) ([]models.Booking, error) {
	rows, err := m.ListBookings(ctx, scope, domain.ListFilter{From: from, To: "9999-12-31"})
	if err != nil {
		return nil, err
	}
	out := []models.Booking{}
	for _, b := range rows {
		if b.Status == string(domain.StatusScheduled) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memDB) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AuditLog{}
	for _, l := range m.logs {
		if !f.All && !containsID(f.BarbershopIDs, l.BarbershopID) {
			continue
		}
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

// countingCache records invalidations.
type countingCache struct {
	catalog.NoopCache
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (c *countingCache) Invalidate(_ context.Context, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, id)
}

func (c *countingCache) has(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return containsID(c.invalidated, id)
}

var (
	_ catalog.Store     = (*memDB)(nil)
	_ domain.Repository = (*memDB)(nil)
	_ dashboard.Stats   = (*memDB)(nil)
	_ AuditReader       = (*memDB)(nil)
)
