package token

import (
	"errors"
	"fmt"
	"time"

	"asset-approval-backend/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("invalid token")
)

type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Manager issues and verifies HS256 access and refresh tokens signed with separate secrets.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (m *Manager) sign(a user.Actor, secret []byte, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		ID:    a.ID,
		Email: a.Email,
		Role:  string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *Manager) Issue(a user.Actor) (*Pair, error) {
	access, err := m.sign(a, m.accessSecret, m.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(a, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Manager) parse(raw string, secret []byte) (user.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return user.Actor{}, ErrExpired
	case err != nil:
		return user.Actor{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	case claims.ID == "":
		return user.Actor{}, ErrInvalid
	}
	return user.Actor{ID: claims.ID, Email: claims.Email, Role: user.Role(claims.Role)}, nil
}

func (m *Manager) ParseAccess(raw string) (user.Actor, error)  { return m.parse(raw, m.accessSecret) }
func (m *Manager) ParseRefresh(raw string) (user.Actor, error) { return m.parse(raw, m.refreshSecret) }
