package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/blizon/ops-dashboard/internal/mapper"
	"github.com/blizon/ops-dashboard/internal/repository"
)

// ContractFilter matches the contract title or the resolved client or project name
type ContractFilter struct {
	Search   string
	ClientID domain.ClientID
}

// ContractService stores contracts and drives per-session contract drafts
// through the milestone ledger.
type ContractService struct {
	store  *repository.Store
	drafts *repository.DraftRepository
	ledger *MilestoneLedger
	ids    idgen.Generator
	logger *zap.Logger
}

func NewContractService(
	store *repository.Store,
	drafts *repository.DraftRepository,
	ledger *MilestoneLedger,
	ids idgen.Generator,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		store:  store,
		drafts: drafts,
		ledger: ledger,
		ids:    ids,
		logger: logger,
	}
}

func (s *ContractService) List(ctx context.Context, filter ContractFilter) []domain.ContractDTO {
	term := strings.ToLower(filter.Search)
	contracts := s.store.Contracts.Filter(func(c domain.Contract) bool {
		return filter.ClientID == "" || c.ClientID == filter.ClientID
	})

	out := make([]domain.ContractDTO, 0, len(contracts))
	for i := range contracts {
		if term != "" && !s.matches(term, &contracts[i]) {
			continue
		}
		out = append(out, contractDTO(s.store, &contracts[i]))
	}
	return out
}

// matches only consults names of references that still resolve
func (s *ContractService) matches(term string, c *domain.Contract) bool {
	if containsFold(term, c.Title) {
		return true
	}
	if client, ok := s.store.Clients.Find(c.ClientID); ok && containsFold(term, client.Name) {
		return true
	}
	if project, ok := s.store.Projects.Find(c.ProjectID); ok && containsFold(term, project.Name) {
		return true
	}
	return false
}

func (s *ContractService) GetByID(ctx context.Context, id domain.ContractID) (*domain.ContractDTO, error) {
	contract, ok := s.store.Contracts.Find(id)
	if !ok {
		return nil, mapper.FormatError("contract", "get", domain.ErrNotFound)
	}
	dto := contractDTO(s.store, &contract)
	return &dto, nil
}

// Create stores a complete contract record in one step. Every milestone
// passes through the ledger, so the stored total is the milestone sum.
func (s *ContractService) Create(ctx context.Context, req *domain.ContractRequest) (*domain.ContractDTO, *domain.Notification, error) {
	draft := domain.ContractDraft{Mode: domain.DraftModeCreate}
	return s.saveRecord(ctx, &draft, req)
}

// Update replaces a contract record. An unknown id is inserted under that id.
func (s *ContractService) Update(ctx context.Context, id domain.ContractID, req *domain.ContractRequest) (*domain.ContractDTO, *domain.Notification, error) {
	draft := domain.ContractDraft{Mode: domain.DraftModeEdit, ContractID: id}
	return s.saveRecord(ctx, &draft, req)
}

func (s *ContractService) saveRecord(ctx context.Context, draft *domain.ContractDraft, req *domain.ContractRequest) (*domain.ContractDTO, *domain.Notification, error) {
	if err := validateRequest("invalid contract", req); err != nil {
		return nil, nil, err
	}

	draft.Title = req.Title
	draft.ClientID = req.ClientID
	draft.ProjectID = req.ProjectID
	draft.Description = req.Description
	draft.StartDate = req.StartDate
	draft.EndDate = req.EndDate
	draft.Documents = append([]string(nil), req.Documents...)
	for i, m := range req.Milestones {
		if err := s.ledger.appendMilestone(draft, m.Clone()); err != nil {
			return nil, nil, fmt.Errorf("milestone %d: %w", i, err)
		}
	}

	contract, err := s.ledger.Finalize(draft)
	if err != nil {
		return nil, nil, err
	}
	dto, n := s.upsert(ctx, &contract)
	return dto, n, nil
}

func (s *ContractService) upsert(ctx context.Context, contract *domain.Contract) (*domain.ContractDTO, *domain.Notification) {
	event := s.store.Contracts.Upsert(*contract)
	n := NotificationFor(event)
	s.logger.Debug("contract saved",
		zap.String("id", string(contract.ID)),
		zap.String("op", string(event.Op)),
		zap.String("totalValue", contract.TotalValue.String()),
		zap.String("actor", actor(ctx)))

	dto := contractDTO(s.store, contract)
	return &dto, &n
}

// Delete removes a contract. Deleting an unknown id returns nil.
func (s *ContractService) Delete(ctx context.Context, id domain.ContractID) *domain.Notification {
	event, ok := s.store.Contracts.Remove(id)
	if !ok {
		return nil
	}
	n := NotificationFor(event)
	return &n
}

// SetMilestoneCompleted toggles the completion flag of one stored milestone
func (s *ContractService) SetMilestoneCompleted(ctx context.Context, id domain.ContractID, milestoneID domain.MilestoneID, completed bool) (*domain.ContractDTO, error) {
	contract, ok := s.store.Contracts.Find(id)
	if !ok {
		return nil, mapper.FormatError("contract", "get", domain.ErrNotFound)
	}

	found := false
	for i := range contract.Milestones {
		if contract.Milestones[i].ID == milestoneID {
			contract.Milestones[i].IsCompleted = completed
			found = true
			break
		}
	}
	if !found {
		return nil, mapper.FormatError("milestone", "get", domain.ErrNotFound)
	}

	s.store.Contracts.Upsert(contract)
	s.logger.Info("milestone completion changed",
		zap.String("contract", string(id)),
		zap.String("milestone", string(milestoneID)),
		zap.Bool("completed", completed),
		zap.String("actor", actor(ctx)))

	dto := contractDTO(s.store, &contract)
	return &dto, nil
}

// StartDraft opens a creation draft for the session
func (s *ContractService) StartDraft(ctx context.Context, sessionID string, req *domain.ContractFieldsRequest) (*domain.ContractDraft, error) {
	draft := domain.ContractDraft{
		ID:         domain.DraftID(s.ids.Generate("draft")),
		Mode:       domain.DraftModeCreate,
		Milestones: []domain.ContractMilestone{},
	}
	if req != nil {
		if err := s.ledger.SetFields(&draft, req); err != nil {
			return nil, err
		}
	}
	saved := s.drafts.Save(sessionID, draft)
	return &saved, nil
}

// EditContract opens an edit draft seeded from a stored contract
func (s *ContractService) EditContract(ctx context.Context, sessionID string, id domain.ContractID) (*domain.ContractDraft, error) {
	contract, ok := s.store.Contracts.Find(id)
	if !ok {
		return nil, mapper.FormatError("contract", "get", domain.ErrNotFound)
	}
	draft := mapper.DraftFromContract(domain.DraftID(s.ids.Generate("draft")), &contract)
	saved := s.drafts.Save(sessionID, draft)
	return &saved, nil
}

func (s *ContractService) GetDraft(ctx context.Context, sessionID string, id domain.DraftID) (*domain.ContractDraft, error) {
	draft, err := s.drafts.Get(sessionID, id)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *ContractService) ListDrafts(ctx context.Context, sessionID string) []domain.ContractDraft {
	return s.drafts.ListForSession(sessionID)
}

func (s *ContractService) SetDraftFields(ctx context.Context, sessionID string, id domain.DraftID, req *domain.ContractFieldsRequest) (*domain.ContractDraft, error) {
	draft, err := s.drafts.Update(sessionID, id, func(d *domain.ContractDraft) error {
		return s.ledger.SetFields(d, req)
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *ContractService) AddMilestone(ctx context.Context, sessionID string, id domain.DraftID, in domain.MilestoneInput) (*domain.ContractDraft, error) {
	draft, err := s.drafts.Update(sessionID, id, func(d *domain.ContractDraft) error {
		_, err := s.ledger.AddMilestone(d, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// RemoveMilestone removes by position. The index must come from the draft
// as last read; a stale index yields an IndexOutOfRangeError.
func (s *ContractService) RemoveMilestone(ctx context.Context, sessionID string, id domain.DraftID, index int) (*domain.ContractDraft, error) {
	draft, err := s.drafts.Update(sessionID, id, func(d *domain.ContractDraft) error {
		_, err := s.ledger.RemoveMilestone(d, index)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// FinalizeDraft validates the draft, stores the contract and discards the draft
func (s *ContractService) FinalizeDraft(ctx context.Context, sessionID string, id domain.DraftID) (*domain.ContractDTO, *domain.Notification, error) {
	draft, err := s.drafts.Get(sessionID, id)
	if err != nil {
		return nil, nil, err
	}

	contract, err := s.ledger.Finalize(&draft)
	if err != nil {
		return nil, nil, err
	}

	dto, n := s.upsert(ctx, &contract)
	s.drafts.Delete(sessionID, id)
	return dto, n, nil
}

func (s *ContractService) DiscardDraft(ctx context.Context, sessionID string, id domain.DraftID) {
	s.drafts.Delete(sessionID, id)
}
