package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymuse/internal/auth"
)

func TestManager_RoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", 15*time.Minute, 720*time.Hour)
	userID := uuid.New()

	pair, err := m.IssuePair(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	gotAccess, err := m.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotAccess)

	gotRefresh, err := m.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotRefresh)
}

func TestManager_RejectsSwappedTokenUse(t *testing.T) {
	m := auth.NewManager("test-secret", 15*time.Minute, 720*time.Hour)

	pair, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = m.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute, -time.Minute)

	pair, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", 15*time.Minute, 720*time.Hour)
	verifier := auth.NewManager("secret-b", 15*time.Minute, 720*time.Hour)

	pair, err := issuer.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = verifier.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := auth.NewManager("test-secret", 15*time.Minute, 720*time.Hour)

	_, err := m.VerifyAccess("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
