package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// List godoc
// @Summary List projects
// @Description Projects with resolved client name and team, optionally filtered
// @Tags Projects
// @Produce json
// @Param search query string false "Case-insensitive match on name or description"
// @Param status query string false "Project status" Enums(Active, Working, Closed)
// @Param clientId query string false "Owning client"
// @Success 200 {object} domain.ListResponse{data=[]domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.ProjectStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		respondWithError(w, http.StatusBadRequest, "status must be Active, Working or Closed")
		return
	}

	projects := h.projectService.List(r.Context(), service.ProjectFilter{
		Search:   r.URL.Query().Get("search"),
		Status:   status,
		ClientID: domain.ClientID(r.URL.Query().Get("clientId")),
	})
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: projects, Total: len(projects)})
}

// GetByID godoc
// @Summary Get project by ID
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetByID(r.Context(), domain.ProjectID(chi.URLParam(r, "id")))
	if err != nil {
		respondServiceError(w, h.logger, err, "get project")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// Create godoc
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.ProjectRequest true "Project data"
// @Success 201 {object} domain.MutationResponse{data=domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, n, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create project")
		return
	}
	w.Header().Set("Location", "/api/v1/projects/"+string(project.ID))
	respondJSON(w, http.StatusCreated, mutationResponse(project, n))
}

// Update godoc
// @Summary Upsert project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.ProjectRequest true "Project data"
// @Success 200 {object} domain.MutationResponse{data=domain.ProjectDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, n, err := h.projectService.Update(r.Context(), domain.ProjectID(chi.URLParam(r, "id")), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update project")
		return
	}
	respondJSON(w, http.StatusOK, mutationResponse(project, n))
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.MutationResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	n := h.projectService.Delete(r.Context(), domain.ProjectID(chi.URLParam(r, "id")))
	respondJSON(w, http.StatusOK, mutationResponse(nil, n))
}
