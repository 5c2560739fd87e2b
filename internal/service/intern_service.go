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

// InternFilter mirrors the intern section: a status tab plus a search term
// over name, university and department. An empty status shows every intern.
type InternFilter struct {
	Search string
	Status domain.InternStatus
}

type InternService struct {
	internRepo *repository.InternRepository
	ids        idgen.Generator
	logger     *zap.Logger
}

func NewInternService(
	internRepo *repository.InternRepository,
	ids idgen.Generator,
	logger *zap.Logger,
) *InternService {
	return &InternService{
		internRepo: internRepo,
		ids:        ids,
		logger:     logger,
	}
}

func (s *InternService) Create(ctx context.Context, req *domain.InternRequest) (*domain.Intern, *domain.Notification, error) {
	if err := validateRequest("invalid intern", req); err != nil {
		return nil, nil, err
	}

	intern := mapper.InternFromRequest(domain.InternID(s.ids.Generate("intern")), req)
	event := s.internRepo.Upsert(intern)
	n := NotificationFor(event)
	s.logger.Debug("intern created", zap.String("id", string(intern.ID)), zap.String("actor", actor(ctx)))
	return &intern, &n, nil
}

func (s *InternService) Update(ctx context.Context, id domain.InternID, req *domain.InternRequest) (*domain.Intern, *domain.Notification, error) {
	if err := validateRequest("invalid intern", req); err != nil {
		return nil, nil, err
	}

	intern := mapper.InternFromRequest(id, req)
	event := s.internRepo.Upsert(intern)
	n := NotificationFor(event)
	return &intern, &n, nil
}

func (s *InternService) Delete(ctx context.Context, id domain.InternID) *domain.Notification {
	event, ok := s.internRepo.Remove(id)
	if !ok {
		return nil
	}
	n := NotificationFor(event)
	return &n
}

func (s *InternService) GetByID(ctx context.Context, id domain.InternID) (*domain.Intern, error) {
	intern, ok := s.internRepo.Find(id)
	if !ok {
		return nil, mapper.FormatError("intern", "get", domain.ErrNotFound)
	}
	return &intern, nil
}

func (s *InternService) List(ctx context.Context, filter InternFilter) []domain.Intern {
	term := strings.ToLower(filter.Search)
	return s.internRepo.Filter(func(i domain.Intern) bool {
		if filter.Status != "" && i.Status != filter.Status {
			return false
		}
		return term == "" || containsFold(term, i.Name, i.University, i.Department)
	})
}
