// Package dashboard builds the landing summary of each role. The variant
// is picked once per request by For.
package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
)

type Totals struct {
	Barbershops int64            `json:"barbershops"`
	Barbers     int64            `json:"barbers"`
	Bookings    map[string]int64 `json:"bookings"`
	Revenue     float64          `json:"revenue"`
}

type Stats interface {
	// Totals counts over every shop, or only the shops of adminID.
	Totals(ctx context.Context, adminID *uuid.UUID) (Totals, error)
	// Scheduled lists scheduled bookings on or after from, by date and time.
	Scheduled(ctx context.Context, scope access.Scope, from string) ([]models.Booking, error)
}

type Summary struct {
	Role     access.Role      `json:"role"`
	Totals   *Totals          `json:"totals,omitempty"`
	Today    []models.Booking `json:"today,omitempty"`
	Upcoming []models.Booking `json:"upcoming,omitempty"`
}

type Dashboard interface {
	Role() access.Role
	Summary(ctx context.Context) (Summary, error)
}

// For selects the dashboard of p. today is YYYY-MM-DD in the shop's zone.
func For(p session.Principal, stats Stats, today string) Dashboard {
	switch p.Role {
	case access.RoleSuperAdmin:
		return SuperAdmin{stats: stats}
	case access.RoleAdmin:
		return Admin{stats: stats, adminID: p.UserID}
	case access.RoleBarber:
		return Barber{stats: stats, scope: p.Scope(), today: today}
	default:
		return Client{stats: stats, scope: access.ForClient(p.Phone), today: today}
	}
}

// ===============================
// Variants
// ===============================

type SuperAdmin struct {
	stats Stats
}

func (SuperAdmin) Role() access.Role { return access.RoleSuperAdmin }

func (d SuperAdmin) Summary(ctx context.Context) (Summary, error) {
	t, err := d.stats.Totals(ctx, nil)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Role: d.Role(), Totals: &t}, nil
}

type Admin struct {
	stats   Stats
	adminID uuid.UUID
}

func (Admin) Role() access.Role { return access.RoleAdmin }

func (d Admin) Summary(ctx context.Context) (Summary, error) {
	t, err := d.stats.Totals(ctx, &d.adminID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Role: d.Role(), Totals: &t}, nil
}

type Barber struct {
	stats Stats
	scope access.Scope
	today string
}

func (Barber) Role() access.Role { return access.RoleBarber }

func (d Barber) Summary(ctx context.Context) (Summary, error) {
	rows, err := d.stats.Scheduled(ctx, d.scope, d.today)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Role: d.Role(), Today: []models.Booking{}, Upcoming: []models.Booking{}}
	for _, b := range rows {
		if b.Date == d.today {
			s.Today = append(s.Today, b)
		} else {
			s.Upcoming = append(s.Upcoming, b)
		}
	}
	return s, nil
}

type Client struct {
	stats Stats
	scope access.Scope
	today string
}

func (Client) Role() access.Role { return access.RoleClient }

func (d Client) Summary(ctx context.Context) (Summary, error) {
	if d.scope.Empty() {
		return Summary{Role: d.Role(), Upcoming: []models.Booking{}}, nil
	}
	rows, err := d.stats.Scheduled(ctx, d.scope, d.today)
	if err != nil {
		return Summary{}, err
	}
	if rows == nil {
		rows = []models.Booking{}
	}
	return Summary{Role: d.Role(), Upcoming: rows}, nil
}
