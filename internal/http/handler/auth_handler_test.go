package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blizon/ops-dashboard/internal/domain"
)

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	before := env.sessions.Count()

	w := env.do(t, http.MethodPost, "/auth/login", domain.LoginRequest{Username: "admin", Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[domain.LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Admin User", resp.User.Name)
	assert.Equal(t, before+1, env.sessions.Count())

	user, err := env.tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	_, err = env.sessions.Get(user.SessionID)
	assert.NoError(t, err)
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/auth/login", domain.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/auth/login", domain.LoginRequest{Username: "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decode[domain.APIError](t, w)
	assert.Contains(t, apiErr.Errors, "password")

	w = env.do(t, http.MethodPost, "/auth/login", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]string](t, w)
	assert.Equal(t, "AU", me["initials"])
	assert.Equal(t, env.sessionID, me["sessionId"])

	w = env.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := env.sessions.Get(env.sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// session-scoped endpoints now answer 401
	w = env.do(t, http.MethodGet, "/session/view", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
