package handler

import (
	"errors"
	"net/http"

	"github.com/blizon/ops-dashboard/internal/auth"
	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authn    *auth.Authenticator
	tokens   *auth.TokenManager
	sessions *service.SessionService
	logger   *zap.Logger
}

func NewAuthHandler(authn *auth.Authenticator, tokens *auth.TokenManager, sessions *service.SessionService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authn:    authn,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Login godoc
// @Summary Log in
// @Description Checks the operator credentials, opens a dashboard session and returns its bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	user, err := h.authn.Verify(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Info("login rejected", zap.String("username", req.Username))
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondServiceError(w, h.logger, err, "log in")
		return
	}

	session := h.sessions.Open(user)
	token, expiresAt, err := h.tokens.Issue(&auth.UserContext{
		Username:    user.Username,
		DisplayName: user.Name,
		Role:        user.Role,
		SessionID:   session.ID,
	})
	if err != nil {
		h.sessions.Close(session.ID)
		respondServiceError(w, h.logger, err, "issue session token")
		return
	}

	respondJSON(w, http.StatusOK, domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Logout godoc
// @Summary Log out
// @Description Closes the current session, dropping its pending search and contract drafts
// @Tags Auth
// @Success 204
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.sessions.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Get current operator
// @Description Returns the logged-in operator and the session id
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"username":  userCtx.Username,
		"name":      userCtx.DisplayName,
		"role":      userCtx.Role,
		"initials":  userCtx.Initials(),
		"sessionId": userCtx.SessionID,
	})
}
