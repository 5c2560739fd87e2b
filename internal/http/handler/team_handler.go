package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TeamHandler struct {
	teamService *service.TeamMemberService
	logger      *zap.Logger
}

func NewTeamHandler(teamService *service.TeamMemberService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		logger:      logger,
	}
}

// List godoc
// @Summary List team members
// @Tags Team
// @Produce json
// @Param search query string false "Case-insensitive match on name, position or email"
// @Param department query string false "Exact department"
// @Success 200 {object} domain.ListResponse{data=[]domain.TeamMember}
// @Security BearerAuth
// @Router /team [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members := h.teamService.List(r.Context(), service.TeamMemberFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
	})
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: members, Total: len(members)})
}

// GetByID godoc
// @Summary Get team member by ID
// @Tags Team
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} domain.TeamMember
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /team/{id} [get]
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	member, err := h.teamService.GetByID(r.Context(), domain.TeamMemberID(chi.URLParam(r, "id")))
	if err != nil {
		respondServiceError(w, h.logger, err, "get team member")
		return
	}
	respondJSON(w, http.StatusOK, member)
}

// Create godoc
// @Summary Add team member
// @Tags Team
// @Accept json
// @Produce json
// @Param request body domain.TeamMemberRequest true "Team member data"
// @Success 201 {object} domain.MutationResponse{data=domain.TeamMember}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /team [post]
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, n, err := h.teamService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create team member")
		return
	}
	w.Header().Set("Location", "/api/v1/team/"+string(member.ID))
	respondJSON(w, http.StatusCreated, mutationResponse(member, n))
}

// Update godoc
// @Summary Upsert team member
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team member ID"
// @Param request body domain.TeamMemberRequest true "Team member data"
// @Success 200 {object} domain.MutationResponse{data=domain.TeamMember}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /team/{id} [put]
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.TeamMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	member, n, err := h.teamService.Update(r.Context(), domain.TeamMemberID(chi.URLParam(r, "id")), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update team member")
		return
	}
	respondJSON(w, http.StatusOK, mutationResponse(member, n))
}

// Delete godoc
// @Summary Remove team member
// @Tags Team
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} domain.MutationResponse
// @Security BearerAuth
// @Router /team/{id} [delete]
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	n := h.teamService.Delete(r.Context(), domain.TeamMemberID(chi.URLParam(r, "id")))
	respondJSON(w, http.StatusOK, mutationResponse(nil, n))
}
