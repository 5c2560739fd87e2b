package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InternHandler struct {
	internService *service.InternService
	logger        *zap.Logger
}

func NewInternHandler(internService *service.InternService, logger *zap.Logger) *InternHandler {
	return &InternHandler{
		internService: internService,
		logger:        logger,
	}
}

// List godoc
// @Summary List interns
// @Tags Interns
// @Produce json
// @Param search query string false "Case-insensitive match on name, university or email"
// @Param status query string false "Intern status" Enums(Onboard, Postponed)
// @Success 200 {object} domain.ListResponse{data=[]domain.Intern}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /interns [get]
func (h *InternHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.InternStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		respondWithError(w, http.StatusBadRequest, "status must be Onboard or Postponed")
		return
	}

	interns := h.internService.List(r.Context(), service.InternFilter{
		Search: r.URL.Query().Get("search"),
		Status: status,
	})
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: interns, Total: len(interns)})
}

// GetByID godoc
// @Summary Get intern by ID
// @Tags Interns
// @Produce json
// @Param id path string true "Intern ID"
// @Success 200 {object} domain.Intern
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /interns/{id} [get]
func (h *InternHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	intern, err := h.internService.GetByID(r.Context(), domain.InternID(chi.URLParam(r, "id")))
	if err != nil {
		respondServiceError(w, h.logger, err, "get intern")
		return
	}
	respondJSON(w, http.StatusOK, intern)
}

// Create godoc
// @Summary Add intern
// @Tags Interns
// @Accept json
// @Produce json
// @Param request body domain.InternRequest true "Intern data"
// @Success 201 {object} domain.MutationResponse{data=domain.Intern}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /interns [post]
func (h *InternHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.InternRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	intern, n, err := h.internService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create intern")
		return
	}
	w.Header().Set("Location", "/api/v1/interns/"+string(intern.ID))
	respondJSON(w, http.StatusCreated, mutationResponse(intern, n))
}

// Update godoc
// @Summary Upsert intern
// @Tags Interns
// @Accept json
// @Produce json
// @Param id path string true "Intern ID"
// @Param request body domain.InternRequest true "Intern data"
// @Success 200 {object} domain.MutationResponse{data=domain.Intern}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /interns/{id} [put]
func (h *InternHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.InternRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	intern, n, err := h.internService.Update(r.Context(), domain.InternID(chi.URLParam(r, "id")), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update intern")
		return
	}
	respondJSON(w, http.StatusOK, mutationResponse(intern, n))
}

// Delete godoc
// @Summary Remove intern
// @Tags Interns
// @Produce json
// @Param id path string true "Intern ID"
// @Success 200 {object} domain.MutationResponse
// @Security BearerAuth
// @Router /interns/{id} [delete]
func (h *InternHandler) Delete(w http.ResponseWriter, r *http.Request) {
	n := h.internService.Delete(r.Context(), domain.InternID(chi.URLParam(r, "id")))
	respondJSON(w, http.StatusOK, mutationResponse(nil, n))
}
