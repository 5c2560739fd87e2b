package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List godoc
// @Summary List clients
// @Description Clients in store order (newest first), optionally filtered by a search term
// @Tags Clients
// @Produce json
// @Param search query string false "Case-insensitive match on name, company or email"
// @Success 200 {object} domain.ListResponse{data=[]domain.Client}
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients := h.clientService.List(r.Context(), service.ClientFilter{
		Search: r.URL.Query().Get("search"),
	})
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: clients, Total: len(clients)})
}

// GetByID godoc
// @Summary Get client by ID
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientService.GetByID(r.Context(), domain.ClientID(chi.URLParam(r, "id")))
	if err != nil {
		respondServiceError(w, h.logger, err, "get client")
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// Create godoc
// @Summary Create client
// @Description Adds a client with a freshly generated id at the front of the list
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.ClientRequest true "Client data"
// @Success 201 {object} domain.MutationResponse{data=domain.Client}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, n, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create client")
		return
	}
	w.Header().Set("Location", "/api/v1/clients/"+string(client.ID))
	respondJSON(w, http.StatusCreated, mutationResponse(client, n))
}

// Update godoc
// @Summary Upsert client
// @Description Replaces the client in place, or adds it at the front when the id is unknown
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body domain.ClientRequest true "Client data"
// @Success 200 {object} domain.MutationResponse{data=domain.Client}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, n, err := h.clientService.Update(r.Context(), domain.ClientID(chi.URLParam(r, "id")), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update client")
		return
	}
	respondJSON(w, http.StatusOK, mutationResponse(client, n))
}

// Delete godoc
// @Summary Delete client
// @Description Removes the client. Unknown ids are ignored and return no notification.
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.MutationResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	n := h.clientService.Delete(r.Context(), domain.ClientID(chi.URLParam(r, "id")))
	respondJSON(w, http.StatusOK, mutationResponse(nil, n))
}
