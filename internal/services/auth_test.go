package services

import (
	"strings"
	"testing"

	"vibelink-backend/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginRoundtrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("ava", "hunter2", "Ava")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.NotZero(t, userID)

	loginToken, err := svc.Login("ava", "hunter2")
	require.NoError(t, err)
	loginID, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, userID, loginID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("ava", "hunter2", "")
	require.NoError(t, err)

	_, err = svc.Register("ava", "other", "")
	assert.ErrorIs(t, err, errs.ErrUsernameTaken)
}

func TestLoginRejections(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("ava", "hunter2", "")
	require.NoError(t, err)

	_, err = svc.Login("ava", "wrong")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = svc.Login("nobody", "hunter2")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := newTestDB(t)

	token, err := NewAuthService(db, "secret-a").Register("ava", "hunter2", "")
	require.NoError(t, err)

	_, err = NewAuthService(db, "secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestScoreResponse(t *testing.T) {
	svc := NewScoringService()

	assert.Equal(t, 10, svc.ScoreResponse("", false))
	assert.Equal(t, 15, svc.ScoreResponse("", true))
	assert.Equal(t, 12, svc.ScoreResponse(strings.Repeat("a", 40), false))

	// Length bonus is capped.
	assert.Equal(t, 50, svc.ScoreResponse(strings.Repeat("a", 5000), false))
}
