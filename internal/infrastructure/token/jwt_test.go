package token

import (
	"errors"
	"testing"
	"time"

	"asset-approval-backend/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	actor := user.Actor{ID: "u1", Email: "ga@corp.id", Role: user.RoleGA}

	pair, err := m.Issue(actor)
	require.NoError(t, err)

	got, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, actor, got)

	got, err = m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, actor, got)

	// tokens are not interchangeable
	_, err = m.ParseAccess(pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("a", "r", time.Hour, 24*time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, err := m.Issue(user.Actor{ID: "u1"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpired)

	// refresh is still inside its 24h window
	_, err = m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	m := NewManager("a", "r", time.Hour, time.Hour)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseAccess(raw)
	require.True(t, errors.Is(err, ErrInvalid))

	_, err = m.ParseAccess("garbage")
	require.ErrorIs(t, err, ErrInvalid)
}
