package auth_test

import (
	"testing"
	"time"

	"github.com/blizon/ops-dashboard/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = &auth.UserContext{
	Username:    "admin",
	DisplayName: "Admin User",
	Role:        "Administrator",
	SessionID:   "session-1",
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tokens := auth.NewTokenManager("test-key", time.Hour)

	token, expiresAt, err := tokens.Issue(testUser)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	user, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, testUser, user)
}

func TestTokenManager_Expired(t *testing.T) {
	issued := time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC)
	tokens := auth.NewTokenManager("test-key", time.Minute).WithClock(func() time.Time { return issued })

	token, _, err := tokens.Issue(testUser)
	require.NoError(t, err)

	tokens.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })
	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenManager_WrongKey(t *testing.T) {
	token, _, err := auth.NewTokenManager("key-a", time.Hour).Issue(testUser)
	require.NoError(t, err)

	_, err = auth.NewTokenManager("key-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_RejectsOtherSigningMethods(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, auth.SessionClaims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    "ops-dashboard",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.NewTokenManager("test-key", time.Hour).Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_RequiresSession(t *testing.T) {
	tokens := auth.NewTokenManager("test-key", time.Hour)
	token, _, err := tokens.Issue(&auth.UserContext{Username: "admin"})
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := auth.NewTokenManager("test-key", time.Hour).Validate("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
