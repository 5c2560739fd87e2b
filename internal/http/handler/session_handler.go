package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"go.uber.org/zap"
)

// SessionHandler exposes the per-session search box and active view
type SessionHandler struct {
	sessionService *service.SessionService
	logger         *zap.Logger
}

func NewSessionHandler(sessionService *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// SubmitSearch godoc
// @Summary Submit search
// @Description Evaluates the query at once, cancelling a pending live search, and moves the view to the focused section
// @Tags Session
// @Accept json
// @Produce json
// @Param request body domain.SearchRequest true "Query"
// @Success 200 {object} domain.SessionSearchState
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /session/search [post]
func (h *SessionHandler) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req domain.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.sessionService.Submit(r.Context(), sid, req.Query)
	if err != nil {
		respondServiceError(w, h.logger, err, "submit search")
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// TypeSearch godoc
// @Summary Live search keystroke
// @Description Records the current text of the search box. Evaluation happens after the debounce interval; poll GET /session/search for the result.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body domain.SearchRequest true "Query"
// @Success 202 {object} domain.SessionSearchState
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /session/search/live [post]
func (h *SessionHandler) TypeSearch(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req domain.SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.sessionService.Type(r.Context(), sid, req.Query)
	if err != nil {
		respondServiceError(w, h.logger, err, "record search")
		return
	}
	respondJSON(w, http.StatusAccepted, state)
}

// GetSearch godoc
// @Summary Get session search state
// @Tags Session
// @Produce json
// @Success 200 {object} domain.SessionSearchState
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /session/search [get]
func (h *SessionHandler) GetSearch(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	state, err := h.sessionService.SearchState(r.Context(), sid)
	if err != nil {
		respondServiceError(w, h.logger, err, "get search state")
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// GetView godoc
// @Summary Get active view
// @Tags Session
// @Produce json
// @Success 200 {object} domain.ViewState
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /session/view [get]
func (h *SessionHandler) GetView(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.sessionService.View(r.Context(), sid)
	if err != nil {
		respondServiceError(w, h.logger, err, "get view")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Navigate godoc
// @Summary Change active view
// @Description Switches to the given section. Explicit navigation always wins over search focus.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body domain.NavigateRequest true "Target section"
// @Success 200 {object} domain.ViewState
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /session/view [put]
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req domain.NavigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.sessionService.Navigate(r.Context(), sid, req.Section)
	if err != nil {
		respondServiceError(w, h.logger, err, "change view")
		return
	}
	respondJSON(w, http.StatusOK, view)
}
