package repository

import "github.com/blizon/ops-dashboard/internal/domain"

// TeamMemberRepository stores team members, newest first
type TeamMemberRepository = Collection[domain.TeamMemberID, domain.TeamMember]

func NewTeamMemberRepository(seed []domain.TeamMember) *TeamMemberRepository {
	return newCollection(domain.KindTeamMember, seed,
		func(m domain.TeamMember) domain.TeamMemberID { return m.ID },
		func(m domain.TeamMember) string { return m.Name },
		domain.TeamMember.Clone,
	)
}
