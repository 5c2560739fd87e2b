package repository

import "github.com/blizon/ops-dashboard/internal/domain"

// InternRepository stores interns, newest first
type InternRepository = Collection[domain.InternID, domain.Intern]

func NewInternRepository(seed []domain.Intern) *InternRepository {
	return newCollection(domain.KindIntern, seed,
		func(i domain.Intern) domain.InternID { return i.ID },
		func(i domain.Intern) string { return i.Name },
		domain.Intern.Clone,
	)
}
