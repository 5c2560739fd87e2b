package repository

import "github.com/blizon/ops-dashboard/internal/domain"

// ProjectRepository stores projects, newest first
type ProjectRepository = Collection[domain.ProjectID, domain.Project]

func NewProjectRepository(seed []domain.Project) *ProjectRepository {
	return newCollection(domain.KindProject, seed,
		func(p domain.Project) domain.ProjectID { return p.ID },
		func(p domain.Project) string { return p.Name },
		domain.Project.Clone,
	)
}
