package mapper

import (
	"fmt"

	"github.com/blizon/ops-dashboard/internal/domain"
)

// UnknownName is rendered for a reference whose target no longer exists
const UnknownName = "Unknown"

// ToProjectDTO converts Project to ProjectDTO. A nil client or a missing
// team member renders as UnknownName.
func ToProjectDTO(project *domain.Project, client *domain.Client, members map[domain.TeamMemberID]domain.TeamMember) domain.ProjectDTO {
	dto := domain.ProjectDTO{
		Project:     project.Clone(),
		ClientName:  UnknownName,
		TeamMembers: make([]domain.TeamMemberRef, 0, len(project.TeamMemberIDs)),
	}
	if client != nil {
		dto.ClientName = client.Name
	}
	for _, id := range project.TeamMemberIDs {
		ref := domain.TeamMemberRef{ID: id, Name: UnknownName}
		if m, ok := members[id]; ok {
			ref.Name = m.Name
		}
		dto.TeamMembers = append(dto.TeamMembers, ref)
	}
	return dto
}

// ToContractDTO converts Contract to ContractDTO with resolved names and progress
func ToContractDTO(contract *domain.Contract, client *domain.Client, project *domain.Project) domain.ContractDTO {
	dto := domain.ContractDTO{
		Contract:            contract.Clone(),
		ClientName:          UnknownName,
		ProjectName:         UnknownName,
		CompletedMilestones: contract.CompletedMilestones(),
		TotalMilestones:     len(contract.Milestones),
		Progress:            contract.Progress(),
	}
	if client != nil {
		dto.ClientName = client.Name
	}
	if project != nil {
		dto.ProjectName = project.Name
	}
	return dto
}

// ClientFromRequest builds a Client record from a validated request
func ClientFromRequest(id domain.ClientID, req *domain.ClientRequest) domain.Client {
	return domain.Client{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Address: req.Address,
		Photo:   req.Photo,
	}
}

// ProjectFromRequest builds a Project record. An empty status defaults to Active.
func ProjectFromRequest(id domain.ProjectID, req *domain.ProjectRequest) domain.Project {
	status := req.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}
	members := make([]domain.TeamMemberID, len(req.TeamMemberIDs))
	copy(members, req.TeamMemberIDs)
	return domain.Project{
		ID:            id,
		Name:          req.Name,
		ClientID:      req.ClientID,
		Description:   req.Description,
		Status:        status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TeamMemberIDs: members,
		Documents:     append([]string(nil), req.Documents...),
	}
}

// TeamMemberFromRequest builds a TeamMember record from a validated request
func TeamMemberFromRequest(id domain.TeamMemberID, req *domain.TeamMemberRequest) domain.TeamMember {
	return domain.TeamMember{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		JoinedDate: req.JoinedDate,
		Avatar:     req.Avatar,
		Resume:     req.Resume,
	}
}

// InternFromRequest builds an Intern record. An empty status defaults to Onboard.
func InternFromRequest(id domain.InternID, req *domain.InternRequest) domain.Intern {
	status := req.Status
	if status == "" {
		status = domain.InternStatusOnboard
	}
	return domain.Intern{
		ID:         id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		University: req.University,
		Department: req.Department,
		Status:     status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Resume:     req.Resume,
		Photo:      req.Photo,
	}
}

// DraftFromContract seeds an edit-mode draft from a stored contract. A
// contract with milestones already has a derived total.
func DraftFromContract(id domain.DraftID, contract *domain.Contract) domain.ContractDraft {
	c := contract.Clone()
	return domain.ContractDraft{
		ID:            id,
		Mode:          domain.DraftModeEdit,
		ContractID:    c.ID,
		Title:         c.Title,
		ClientID:      c.ClientID,
		ProjectID:     c.ProjectID,
		Description:   c.Description,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		TotalValue:    c.TotalValue,
		Milestones:    c.Milestones,
		Documents:     c.Documents,
		LedgerTouched: len(c.Milestones) > 0,
	}
}

// ContractFromDraft converts a finalized draft into the stored record
func ContractFromDraft(id domain.ContractID, draft *domain.ContractDraft) domain.Contract {
	d := draft.Clone()
	milestones := d.Milestones
	if milestones == nil {
		milestones = []domain.ContractMilestone{}
	}
	return domain.Contract{
		ID:          id,
		Title:       d.Title,
		ClientID:    d.ClientID,
		ProjectID:   d.ProjectID,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		TotalValue:  d.TotalValue,
		Milestones:  milestones,
		Documents:   d.Documents,
	}
}

// FormatError creates a formatted error message for service operations
func FormatError(entity, operation string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", operation, entity, err)
}
