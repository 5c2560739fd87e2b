package handler

import (
	"net/http"
	"strconv"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContractHandler struct {
	contractService *service.ContractService
	logger          *zap.Logger
}

func NewContractHandler(contractService *service.ContractService, logger *zap.Logger) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		logger:          logger,
	}
}

// List godoc
// @Summary List contracts
// @Description Contracts with client and project names and milestone progress
// @Tags Contracts
// @Produce json
// @Param search query string false "Case-insensitive match on title, description or client name"
// @Param clientId query string false "Owning client"
// @Success 200 {object} domain.ListResponse{data=[]domain.ContractDTO}
// @Security BearerAuth
// @Router /contracts [get]
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	contracts := h.contractService.List(r.Context(), service.ContractFilter{
		Search:   r.URL.Query().Get("search"),
		ClientID: domain.ClientID(r.URL.Query().Get("clientId")),
	})
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: contracts, Total: len(contracts)})
}

// GetByID godoc
// @Summary Get contract by ID
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} domain.ContractDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	contract, err := h.contractService.GetByID(r.Context(), domain.ContractID(chi.URLParam(r, "id")))
	if err != nil {
		respondServiceError(w, h.logger, err, "get contract")
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

// Create godoc
// @Summary Create contract
// @Description Stores a complete contract in one call. totalValue is always derived from the milestone amounts.
// @Tags Contracts
// @Accept json
// @Produce json
// @Param request body domain.ContractRequest true "Contract data"
// @Success 201 {object} domain.MutationResponse{data=domain.ContractDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts [post]
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contract, n, err := h.contractService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create contract")
		return
	}
	w.Header().Set("Location", "/api/v1/contracts/"+string(contract.ID))
	respondJSON(w, http.StatusCreated, mutationResponse(contract, n))
}

// Update godoc
// @Summary Upsert contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param request body domain.ContractRequest true "Contract data"
// @Success 200 {object} domain.MutationResponse{data=domain.ContractDTO}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/{id} [put]
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.ContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contract, n, err := h.contractService.Update(r.Context(), domain.ContractID(chi.URLParam(r, "id")), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update contract")
		return
	}
	respondJSON(w, http.StatusOK, mutationResponse(contract, n))
}

// Delete godoc
// @Summary Delete contract
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} domain.MutationResponse
// @Security BearerAuth
// @Router /contracts/{id} [delete]
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	n := h.contractService.Delete(r.Context(), domain.ContractID(chi.URLParam(r, "id")))
	respondJSON(w, http.StatusOK, mutationResponse(nil, n))
}

// SetMilestoneCompleted godoc
// @Summary Mark milestone completed
// @Tags Contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param milestoneId path string true "Milestone ID"
// @Param request body domain.MilestoneCompletionRequest true "Completion flag"
// @Success 200 {object} domain.ContractDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/{id}/milestones/{milestoneId}/completion [put]
func (h *ContractHandler) SetMilestoneCompleted(w http.ResponseWriter, r *http.Request) {
	var req domain.MilestoneCompletionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contract, err := h.contractService.SetMilestoneCompleted(r.Context(),
		domain.ContractID(chi.URLParam(r, "id")),
		domain.MilestoneID(chi.URLParam(r, "milestoneId")),
		req.Completed,
	)
	if err != nil {
		respondServiceError(w, h.logger, err, "update milestone")
		return
	}
	respondJSON(w, http.StatusOK, contract)
}

// StartDraft godoc
// @Summary Start contract draft
// @Description Opens a new contract form for the current session. The body may preset header fields.
// @Tags Contract Drafts
// @Accept json
// @Produce json
// @Param request body domain.ContractFieldsRequest false "Initial fields"
// @Success 201 {object} domain.ContractDraft
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts [post]
func (h *ContractHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req *domain.ContractFieldsRequest
	if r.ContentLength != 0 {
		req = &domain.ContractFieldsRequest{}
		if !decodeJSON(w, r, req) {
			return
		}
	}

	draft, err := h.contractService.StartDraft(r.Context(), sid, req)
	if err != nil {
		respondServiceError(w, h.logger, err, "start contract draft")
		return
	}
	respondJSON(w, http.StatusCreated, draft)
}

// EditContract godoc
// @Summary Start edit draft
// @Description Opens a draft seeded from a stored contract
// @Tags Contract Drafts
// @Produce json
// @Param contractId path string true "Contract ID"
// @Success 201 {object} domain.ContractDraft
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts/from/{contractId} [post]
func (h *ContractHandler) EditContract(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	draft, err := h.contractService.EditContract(r.Context(), sid, domain.ContractID(chi.URLParam(r, "contractId")))
	if err != nil {
		respondServiceError(w, h.logger, err, "start edit draft")
		return
	}
	respondJSON(w, http.StatusCreated, draft)
}

// ListDrafts godoc
// @Summary List contract drafts
// @Tags Contract Drafts
// @Produce json
// @Success 200 {object} domain.ListResponse{data=[]domain.ContractDraft}
// @Security BearerAuth
// @Router /contracts/drafts [get]
func (h *ContractHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	drafts := h.contractService.ListDrafts(r.Context(), sid)
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: drafts, Total: len(drafts)})
}

// GetDraft godoc
// @Summary Get contract draft
// @Tags Contract Drafts
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} domain.ContractDraft
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts/{draftId} [get]
func (h *ContractHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	draft, err := h.contractService.GetDraft(r.Context(), sid, domain.DraftID(chi.URLParam(r, "draftId")))
	if err != nil {
		respondServiceError(w, h.logger, err, "get contract draft")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// SetDraftFields godoc
// @Summary Update draft fields
// @Description Sets header fields on the draft. A totalValue is ignored once the draft has milestones.
// @Tags Contract Drafts
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body domain.ContractFieldsRequest true "Fields to set"
// @Success 200 {object} domain.ContractDraft
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts/{draftId} [put]
func (h *ContractHandler) SetDraftFields(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req domain.ContractFieldsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.contractService.SetDraftFields(r.Context(), sid, domain.DraftID(chi.URLParam(r, "draftId")), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update contract draft")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// AddMilestone godoc
// @Summary Add milestone to draft
// @Description Appends a milestone. Title, description, due date and a positive amount are required.
// @Tags Contract Drafts
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body domain.MilestoneInput true "Milestone"
// @Success 200 {object} domain.ContractDraft
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts/{draftId}/milestones [post]
func (h *ContractHandler) AddMilestone(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var in domain.MilestoneInput
	if !decodeJSON(w, r, &in) {
		return
	}

	draft, err := h.contractService.AddMilestone(r.Context(), sid, domain.DraftID(chi.URLParam(r, "draftId")), in)
	if err != nil {
		respondServiceError(w, h.logger, err, "add milestone")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// RemoveMilestone godoc
// @Summary Remove milestone from draft
// @Description Removes the milestone at the given position of the draft as last read
// @Tags Contract Drafts
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param index path int true "Zero-based milestone position"
// @Success 200 {object} domain.ContractDraft
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts/{draftId}/milestones/{index} [delete]
func (h *ContractHandler) RemoveMilestone(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	draft, err := h.contractService.RemoveMilestone(r.Context(), sid, domain.DraftID(chi.URLParam(r, "draftId")), index)
	if err != nil {
		respondServiceError(w, h.logger, err, "remove milestone")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// FinalizeDraft godoc
// @Summary Save contract draft
// @Description Validates the draft and stores it as a contract. The draft is discarded on success.
// @Tags Contract Drafts
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} domain.MutationResponse{data=domain.ContractDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /contracts/drafts/{draftId}/finalize [post]
func (h *ContractHandler) FinalizeDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	contract, n, err := h.contractService.FinalizeDraft(r.Context(), sid, domain.DraftID(chi.URLParam(r, "draftId")))
	if err != nil {
		respondServiceError(w, h.logger, err, "save contract")
		return
	}
	respondJSON(w, http.StatusOK, mutationResponse(contract, n))
}

// DiscardDraft godoc
// @Summary Discard contract draft
// @Tags Contract Drafts
// @Param draftId path string true "Draft ID"
// @Success 204
// @Security BearerAuth
// @Router /contracts/drafts/{draftId} [delete]
func (h *ContractHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.contractService.DiscardDraft(r.Context(), sid, domain.DraftID(chi.URLParam(r, "draftId")))
	w.WriteHeader(http.StatusNoContent)
}
