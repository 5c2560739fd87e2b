package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blizon/ops-dashboard/internal/auth"
	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type openSessions map[string]bool

func (s openSessions) Touch(id string) error {
	if !s[id] {
		return domain.ErrSessionNotFound
	}
	return nil
}

func serve(t *testing.T, mw *auth.Middleware, authHeader string) (*httptest.ResponseRecorder, *auth.UserContext) {
	t.Helper()
	var captured *auth.UserContext
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, captured
}

func TestMiddleware_Authenticate(t *testing.T) {
	tokens := auth.NewTokenManager("test-key", time.Hour)
	token, _, err := tokens.Issue(testUser)
	require.NoError(t, err)

	mw := auth.NewMiddleware(tokens, openSessions{"session-1": true}, zap.NewNop())

	w, user := serve(t, mw, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.Equal(t, "session-1", user.SessionID)

	w, _ = serve(t, mw, "bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_Rejects(t *testing.T) {
	tokens := auth.NewTokenManager("test-key", time.Hour)
	token, _, err := tokens.Issue(testUser)
	require.NoError(t, err)
	closed, _, err := tokens.Issue(&auth.UserContext{Username: "admin", SessionID: "gone"})
	require.NoError(t, err)

	mw := auth.NewMiddleware(tokens, openSessions{"session-1": true}, zap.NewNop())

	tests := []struct {
		name   string
		header string
		body   string
	}{
		{"missing header", "", "Unauthorized: missing authorization header"},
		{"wrong scheme", "Basic " + token, "Unauthorized: invalid authorization header format"},
		{"no token", "Bearer", "Unauthorized: invalid authorization header format"},
		{"garbage token", "Bearer abc.def.ghi", "Unauthorized: invalid token"},
		{"closed session", "Bearer " + closed, "Unauthorized: session expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, user := serve(t, mw, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.Nil(t, user)
		})
	}
}

func TestMiddleware_NilSessionCheckerAcceptsSignedToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-key", time.Hour)
	token, _, err := tokens.Issue(testUser)
	require.NoError(t, err)

	w, user := serve(t, auth.NewMiddleware(tokens, nil, zap.NewNop()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, user)
}
