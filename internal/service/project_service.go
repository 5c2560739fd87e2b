package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/blizon/ops-dashboard/internal/mapper"
	"github.com/blizon/ops-dashboard/internal/repository"
)

// ProjectFilter mirrors the project section: a status tab plus a search term
// over name and description.
type ProjectFilter struct {
	Search   string
	Status   domain.ProjectStatus
	ClientID domain.ClientID
}

type ProjectService struct {
	store  *repository.Store
	ids    idgen.Generator
	logger *zap.Logger
}

func NewProjectService(store *repository.Store, ids idgen.Generator, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		store:  store,
		ids:    ids,
		logger: logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.ProjectRequest) (*domain.ProjectDTO, *domain.Notification, error) {
	if err := validateRequest("invalid project", req); err != nil {
		return nil, nil, err
	}

	project := mapper.ProjectFromRequest(domain.ProjectID(s.ids.Generate("project")), req)
	event := s.store.Projects.Upsert(project)
	n := NotificationFor(event)
	s.logger.Debug("project created", zap.String("id", string(project.ID)), zap.String("actor", actor(ctx)))

	dto := projectDTO(s.store, &project)
	return &dto, &n, nil
}

func (s *ProjectService) Update(ctx context.Context, id domain.ProjectID, req *domain.ProjectRequest) (*domain.ProjectDTO, *domain.Notification, error) {
	if err := validateRequest("invalid project", req); err != nil {
		return nil, nil, err
	}

	project := mapper.ProjectFromRequest(id, req)
	event := s.store.Projects.Upsert(project)
	n := NotificationFor(event)

	dto := projectDTO(s.store, &project)
	return &dto, &n, nil
}

// Delete removes a project. Contracts pointing at it are left alone and
// render the project as unknown.
func (s *ProjectService) Delete(ctx context.Context, id domain.ProjectID) *domain.Notification {
	event, ok := s.store.Projects.Remove(id)
	if !ok {
		return nil
	}
	n := NotificationFor(event)
	return &n
}

func (s *ProjectService) GetByID(ctx context.Context, id domain.ProjectID) (*domain.ProjectDTO, error) {
	project, ok := s.store.Projects.Find(id)
	if !ok {
		return nil, mapper.FormatError("project", "get", domain.ErrNotFound)
	}
	dto := projectDTO(s.store, &project)
	return &dto, nil
}

func (s *ProjectService) List(ctx context.Context, filter ProjectFilter) []domain.ProjectDTO {
	term := strings.ToLower(filter.Search)
	projects := s.store.Projects.Filter(func(p domain.Project) bool {
		if filter.Status != "" && p.Status != filter.Status {
			return false
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			return false
		}
		return term == "" || containsFold(term, p.Name, p.Description)
	})
	return projectDTOs(s.store, projects)
}

func projectDTO(store *repository.Store, p *domain.Project) domain.ProjectDTO {
	var client *domain.Client
	if c, ok := store.Clients.Find(p.ClientID); ok {
		client = &c
	}
	members := make(map[domain.TeamMemberID]domain.TeamMember, len(p.TeamMemberIDs))
	for _, id := range p.TeamMemberIDs {
		if m, ok := store.TeamMembers.Find(id); ok {
			members[id] = m
		}
	}
	return mapper.ToProjectDTO(p, client, members)
}

func projectDTOs(store *repository.Store, projects []domain.Project) []domain.ProjectDTO {
	out := make([]domain.ProjectDTO, 0, len(projects))
	for i := range projects {
		out = append(out, projectDTO(store, &projects[i]))
	}
	return out
}

func contractDTO(store *repository.Store, c *domain.Contract) domain.ContractDTO {
	var client *domain.Client
	if found, ok := store.Clients.Find(c.ClientID); ok {
		client = &found
	}
	var project *domain.Project
	if found, ok := store.Projects.Find(c.ProjectID); ok {
		project = &found
	}
	return mapper.ToContractDTO(c, client, project)
}

func contractDTOs(store *repository.Store, contracts []domain.Contract) []domain.ContractDTO {
	out := make([]domain.ContractDTO, 0, len(contracts))
	for i := range contracts {
		out = append(out, contractDTO(store, &contracts[i]))
	}
	return out
}
