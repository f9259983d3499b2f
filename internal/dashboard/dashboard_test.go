package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/session"
)

type fakeStats struct {
	gotAdmin *uuid.UUID
	gotScope access.Scope
	rows     []models.Booking
	err      error
}

func (f *fakeStats) Totals(_ context.Context, adminID *uuid.UUID) (Totals, error) {
	f.gotAdmin = adminID
	return Totals{Barbershops: 2, Bookings: map[string]int64{"scheduled": 3}}, f.err
}

func (f *fakeStats) Scheduled(_ context.Context, scope access.Scope, _ string) ([]models.Booking, error) {
	f.gotScope = scope
	return f.rows, f.err
}

func TestForSelectsVariantByRole(t *testing.T) {
	tests := []struct {
		role access.Role
		want Dashboard
	}{
		{access.RoleSuperAdmin, SuperAdmin{}},
		{access.RoleAdmin, Admin{}},
		{access.RoleBarber, Barber{}},
		{access.RoleClient, Client{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			d := For(session.Principal{UserID: uuid.New(), Role: tt.role}, &fakeStats{}, "2025-06-10")
			assert.IsType(t, tt.want, d)
			assert.Equal(t, tt.role, d.Role())
		})
	}
}

func TestAdminTotalsAreScoped(t *testing.T) {
	stats := &fakeStats{}
	admin := uuid.New()

	s, err := For(session.Principal{UserID: admin, Role: access.RoleAdmin}, stats, "").Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.gotAdmin)
	assert.Equal(t, admin, *stats.gotAdmin)
	assert.Equal(t, int64(2), s.Totals.Barbershops)

	_, err = For(session.Principal{Role: access.RoleSuperAdmin}, stats, "").Summary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stats.gotAdmin)
}

func TestBarberSplitsTodayAndUpcoming(t *testing.T) {
	user := uuid.New()
	stats := &fakeStats{rows: []models.Booking{
		{Date: "2025-06-10", Time: "09:00"},
		{Date: "2025-06-10", Time: "10:00"},
		{Date: "2025-06-11", Time: "09:00"},
	}}

	s, err := For(session.Principal{UserID: user, Role: access.RoleBarber}, stats, "2025-06-10").Summary(context.Background())
	require.NoError(t, err)

	assert.Len(t, s.Today, 2)
	assert.Len(t, s.Upcoming, 1)
	assert.Equal(t, &user, stats.gotScope.BarberUserID)
}

func TestClientWithoutPhoneSeesNothing(t *testing.T) {
	stats := &fakeStats{rows: []models.Booking{{Date: "2025-06-10"}}}

	s, err := For(session.Principal{UserID: uuid.New(), Role: access.RoleClient}, stats, "2025-06-10").Summary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.Upcoming)

	s, err = For(session.Principal{Role: access.RoleClient, Phone: "11987654321"}, stats, "2025-06-10").Summary(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Upcoming, 1)
	assert.Equal(t, "11987654321", stats.gotScope.ClientPhone)
}

func TestSummaryPropagatesStoreErrors(t *testing.T) {
	stats := &fakeStats{err: errors.New("down")}

	for _, role := range []access.Role{access.RoleSuperAdmin, access.RoleAdmin, access.RoleBarber} {
		_, err := For(session.Principal{Role: role}, stats, "2025-06-10").Summary(context.Background())
		assert.Error(t, err, role)
	}
}
