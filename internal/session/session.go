// Package session holds the authenticated principal of one request. A
// Session is created by the auth middleware or the login handler and
// travels on the gin context; there is no process-wide session store.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
)

type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
	SignedOut
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case SignedOut:
		return "signed_out"
	}
	return "unknown"
}

var ErrInvalidTransition = errors.New("session: invalid state transition")

type Principal struct {
	UserID       uuid.UUID
	Role         access.Role
	BarbershopID *uuid.UUID
	// Phone is digits only; it scopes client users to their bookings.
	Phone string

	TokenID   string
	ExpiresAt time.Time
}

func (p Principal) Scope() access.Scope {
	return access.For(p.Role, p.UserID, p.Phone)
}

type Session struct {
	state     State
	principal Principal
}

func New() *Session {
	return &Session{state: Unauthenticated}
}

func (s *Session) State() State { return s.state }

// Begin starts checking credentials.
func (s *Session) Begin() error {
	if s.state != Unauthenticated {
		return ErrInvalidTransition
	}
	s.state = Authenticating
	return nil
}

// Complete records the principal once credentials were accepted.
func (s *Session) Complete(p Principal) error {
	if s.state != Authenticating {
		return ErrInvalidTransition
	}
	s.principal = p
	s.state = Authenticated
	return nil
}

// Fail returns an authenticating session to unauthenticated.
func (s *Session) Fail() {
	if s.state == Authenticating {
		s.state = Unauthenticated
	}
}

func (s *Session) SignOut() error {
	if s.state != Authenticated {
		return ErrInvalidTransition
	}
	s.principal = Principal{}
	s.state = SignedOut
	return nil
}

func (s *Session) Principal() (Principal, bool) {
	if s == nil || s.state != Authenticated {
		return Principal{}, false
	}
	return s.principal, true
}
