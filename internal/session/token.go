package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrRevokedToken       = errors.New("revoked_token")
)

// --------- Claims ---------

type claims struct {
	Role         string `json:"role"`
	BarbershopID string `json:"barbershopId,omitempty"`
	Phone        string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// --------- Revocation ---------

// Revocations remembers signed-out token ids until they expire.
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type MemoryRevocations struct {
	mu  sync.Mutex
	ids map[string]time.Time
	now func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{ids: map[string]time.Time{}, now: time.Now}
}

func (m *MemoryRevocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.ids {
		if now.After(exp) {
			delete(m.ids, id)
		}
	}
	m.ids[tokenID] = until
	return nil
}

func (m *MemoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.ids[tokenID]
	return ok && !m.now().After(exp), nil
}

// --------- Authenticator ---------

type Authenticator struct {
	secret  []byte
	ttl     time.Duration
	revoked Revocations
	now     func() time.Time
}

func NewAuthenticator(secret string, ttl time.Duration, revoked Revocations) *Authenticator {
	if revoked == nil {
		revoked = NewMemoryRevocations()
	}
	return &Authenticator{
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: revoked,
		now:     time.Now,
	}
}

// Login checks the password of user and returns an authenticated session
// with its signed token.
func (a *Authenticator) Login(user *models.User, password string) (*Session, string, error) {
	s := New()
	_ = s.Begin()

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.Fail()
		return s, "", ErrInvalidCredentials
	}

	token, p, err := a.issue(user)
	if err != nil {
		s.Fail()
		return s, "", err
	}

	if err := s.Complete(p); err != nil {
		return s, "", err
	}
	return s, token, nil
}

// FromToken rebuilds the session a bearer token stands for.
func (a *Authenticator) FromToken(ctx context.Context, raw string) (*Session, error) {
	s := New()
	_ = s.Begin()

	p, err := a.parse(raw)
	if err != nil {
		s.Fail()
		return s, err
	}

	revoked, err := a.revoked.IsRevoked(ctx, p.TokenID)
	if err != nil {
		s.Fail()
		return s, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		s.Fail()
		return s, ErrRevokedToken
	}

	if err := s.Complete(p); err != nil {
		return s, err
	}
	return s, nil
}

// SignOut revokes the session's token until it would have expired.
func (a *Authenticator) SignOut(ctx context.Context, s *Session) error {
	p, ok := s.Principal()
	if !ok {
		return ErrInvalidTransition
	}
	if err := a.revoked.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return err
	}
	return s.SignOut()
}

func (a *Authenticator) issue(user *models.User) (string, Principal, error) {
	now := a.now()
	p := Principal{
		UserID:       user.ID,
		Role:         access.Role(user.Role),
		BarbershopID: user.BarbershopID,
		Phone:        validators.DigitsOnly(user.Phone),
		TokenID:      uuid.NewString(),
		ExpiresAt:    now.Add(a.ttl),
	}

	c := claims{
		Role:  user.Role,
		Phone: p.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        p.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
		},
	}
	if user.BarbershopID != nil {
		c.BarbershopID = user.BarbershopID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", Principal{}, err
	}
	return token, p, nil
}

func (a *Authenticator) parse(raw string) (Principal, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil || c.ID == "" || !access.Role(c.Role).Valid() {
		return Principal{}, ErrInvalidToken
	}

	p := Principal{
		UserID:  userID,
		Role:    access.Role(c.Role),
		Phone:   c.Phone,
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	if c.BarbershopID != "" {
		id, err := uuid.Parse(c.BarbershopID)
		if err != nil {
			return Principal{}, ErrInvalidToken
		}
		p.BarbershopID = &id
	}
	return p, nil
}
