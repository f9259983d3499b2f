// Package access describes which rows a caller may list or mutate.
package access

import "github.com/google/uuid"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleBarber     Role = "barber"
	RoleClient     Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleBarber, RoleClient:
		return true
	}
	return false
}

func (r Role) IsStaff() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleBarber
}

// Scope is a row filter. The zero value matches nothing; Unrestricted
// matches everything.
type Scope struct {
	Unrestricted bool

	// admin: barbershops where admin_id = AdminID
	AdminID *uuid.UUID
	// barber: bookings of the barber linked to this user
	BarberUserID *uuid.UUID
	// client: bookings made with this phone (digits only)
	ClientPhone string
}

func All() Scope { return Scope{Unrestricted: true} }

func ForAdmin(id uuid.UUID) Scope { return Scope{AdminID: &id} }

func ForBarber(userID uuid.UUID) Scope { return Scope{BarberUserID: &userID} }

func ForClient(phoneDigits string) Scope { return Scope{ClientPhone: phoneDigits} }

// For derives the scope of a principal from its role.
func For(role Role, userID uuid.UUID, phoneDigits string) Scope {
	switch role {
	case RoleSuperAdmin:
		return All()
	case RoleAdmin:
		return ForAdmin(userID)
	case RoleBarber:
		return ForBarber(userID)
	case RoleClient:
		return ForClient(phoneDigits)
	}
	return Scope{}
}

// Empty reports a scope that can never match a row.
func (s Scope) Empty() bool {
	return !s.Unrestricted && s.AdminID == nil && s.BarberUserID == nil && s.ClientPhone == ""
}
