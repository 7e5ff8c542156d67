package auth

import (
	"testing"
	"time"

	"artmarket-backend/internal/config"
	"artmarket-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(ttlMinutes int) *Service {
	return NewService(&config.JWT{Secret: "test-secret", TTLMinutes: ttlMinutes})
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := newTestService(60)

	hash, err := svc.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, svc.CheckPassword(hash, "hunter2"))
	assert.False(t, svc.CheckPassword(hash, "wrong"))
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := newTestService(60)
	user := &model.User{Email: "sam@example.com", RoleID: model.RoleArtistID}
	user.ID = 42

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	principal, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), principal.UserID)
	assert.Equal(t, "sam@example.com", principal.Email)
	assert.Equal(t, model.RoleArtistID, principal.RoleID)
}

func TestVerify_Garbage(t *testing.T) {
	svc := newTestService(60)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	user := &model.User{Email: "sam@example.com", RoleID: model.RoleBuyerID}
	user.ID = 1

	token, err := newTestService(60).IssueToken(user)
	require.NoError(t, err)

	other := NewService(&config.JWT{Secret: "another-secret", TTLMinutes: 60})
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestService(0)
	svc.ttl = -time.Minute

	user := &model.User{Email: "sam@example.com"}
	user.ID = 1
	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
