package repository

import "github.com/blizon/ops-dashboard/internal/domain"

// Seed is the initial dataset handed to the store. The store keeps its own
// copies, so later changes to the seed slices are not observed.
type Seed struct {
	Clients     []domain.Client
	Projects    []domain.Project
	TeamMembers []domain.TeamMember
	Interns     []domain.Intern
	Contracts   []domain.Contract
}

// Store groups the five independent entity collections
type Store struct {
	Clients     *ClientRepository
	Projects    *ProjectRepository
	TeamMembers *TeamMemberRepository
	Interns     *InternRepository
	Contracts   *ContractRepository
}

// NewStore builds every collection from seed
func NewStore(seed Seed) *Store {
	return &Store{
		Clients:     NewClientRepository(seed.Clients),
		Projects:    NewProjectRepository(seed.Projects),
		TeamMembers: NewTeamMemberRepository(seed.TeamMembers),
		Interns:     NewInternRepository(seed.Interns),
		Contracts:   NewContractRepository(seed.Contracts),
	}
}

// Subscribe registers listener on all five collections
func (s *Store) Subscribe(listener ChangeListener) {
	s.Clients.Subscribe(listener)
	s.Projects.Subscribe(listener)
	s.TeamMembers.Subscribe(listener)
	s.Interns.Subscribe(listener)
	s.Contracts.Subscribe(listener)
}

// Count returns the number of records in the collection for kind
func (s *Store) Count(kind domain.EntityKind) int {
	switch kind {
	case domain.KindClient:
		return s.Clients.Count()
	case domain.KindProject:
		return s.Projects.Count()
	case domain.KindTeamMember:
		return s.TeamMembers.Count()
	case domain.KindIntern:
		return s.Interns.Count()
	case domain.KindContract:
		return s.Contracts.Count()
	}
	return 0
}

// Kinds lists the entity kinds held by the store
func Kinds() []domain.EntityKind {
	return []domain.EntityKind{
		domain.KindClient,
		domain.KindProject,
		domain.KindTeamMember,
		domain.KindIntern,
		domain.KindContract,
	}
}
