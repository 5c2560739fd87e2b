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

// TeamMemberFilter narrows the team list by name, position or department
type TeamMemberFilter struct {
	Search     string
	Department string
}

type TeamMemberService struct {
	teamRepo *repository.TeamMemberRepository
	ids      idgen.Generator
	logger   *zap.Logger
}

func NewTeamMemberService(
	teamRepo *repository.TeamMemberRepository,
	ids idgen.Generator,
	logger *zap.Logger,
) *TeamMemberService {
	return &TeamMemberService{
		teamRepo: teamRepo,
		ids:      ids,
		logger:   logger,
	}
}

func (s *TeamMemberService) Create(ctx context.Context, req *domain.TeamMemberRequest) (*domain.TeamMember, *domain.Notification, error) {
	if err := validateRequest("invalid team member", req); err != nil {
		return nil, nil, err
	}

	member := mapper.TeamMemberFromRequest(domain.TeamMemberID(s.ids.Generate("team")), req)
	event := s.teamRepo.Upsert(member)
	n := NotificationFor(event)
	s.logger.Debug("team member created", zap.String("id", string(member.ID)), zap.String("actor", actor(ctx)))
	return &member, &n, nil
}

func (s *TeamMemberService) Update(ctx context.Context, id domain.TeamMemberID, req *domain.TeamMemberRequest) (*domain.TeamMember, *domain.Notification, error) {
	if err := validateRequest("invalid team member", req); err != nil {
		return nil, nil, err
	}

	member := mapper.TeamMemberFromRequest(id, req)
	event := s.teamRepo.Upsert(member)
	n := NotificationFor(event)
	return &member, &n, nil
}

func (s *TeamMemberService) Delete(ctx context.Context, id domain.TeamMemberID) *domain.Notification {
	event, ok := s.teamRepo.Remove(id)
	if !ok {
		return nil
	}
	n := NotificationFor(event)
	return &n
}

func (s *TeamMemberService) GetByID(ctx context.Context, id domain.TeamMemberID) (*domain.TeamMember, error) {
	member, ok := s.teamRepo.Find(id)
	if !ok {
		return nil, mapper.FormatError("team member", "get", domain.ErrNotFound)
	}
	return &member, nil
}

func (s *TeamMemberService) List(ctx context.Context, filter TeamMemberFilter) []domain.TeamMember {
	term := strings.ToLower(filter.Search)
	if term == "" && filter.Department == "" {
		return s.teamRepo.List()
	}
	return s.teamRepo.Filter(func(m domain.TeamMember) bool {
		if filter.Department != "" && !strings.EqualFold(m.Department, filter.Department) {
			return false
		}
		return term == "" || containsFold(term, m.Name, m.Position, m.Department)
	})
}
