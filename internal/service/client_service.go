package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/blizon/ops-dashboard/internal/mapper"
	"github.com/blizon/ops-dashboard/internal/repository"
)

// ClientFilter narrows the client list by a free-text term on name or company
type ClientFilter struct {
	Search string
}

type ClientService struct {
	clientRepo *repository.ClientRepository
	ids        idgen.Generator
	now        func() time.Time
	logger     *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	ids idgen.Generator,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		ids:        ids,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.ClientRequest) (*domain.Client, *domain.Notification, error) {
	if err := validateRequest("invalid client", req); err != nil {
		return nil, nil, err
	}

	client := mapper.ClientFromRequest(domain.ClientID(s.ids.Generate("client")), req)
	client.CreatedAt = s.now()

	event := s.clientRepo.Upsert(client)
	n := NotificationFor(event)
	s.logger.Debug("client created", zap.String("id", string(client.ID)), zap.String("actor", actor(ctx)))
	return &client, &n, nil
}

// Update replaces the whole client record. CreatedAt is kept from the stored
// record; an unknown id is inserted.
func (s *ClientService) Update(ctx context.Context, id domain.ClientID, req *domain.ClientRequest) (*domain.Client, *domain.Notification, error) {
	if err := validateRequest("invalid client", req); err != nil {
		return nil, nil, err
	}

	client := mapper.ClientFromRequest(id, req)
	if existing, ok := s.clientRepo.Find(id); ok {
		client.CreatedAt = existing.CreatedAt
	} else {
		client.CreatedAt = s.now()
	}

	event := s.clientRepo.Upsert(client)
	n := NotificationFor(event)
	s.logger.Debug("client saved", zap.String("id", string(id)), zap.String("op", string(event.Op)), zap.String("actor", actor(ctx)))
	return &client, &n, nil
}

// Delete removes a client. Deleting an unknown id returns nil.
func (s *ClientService) Delete(ctx context.Context, id domain.ClientID) *domain.Notification {
	event, ok := s.clientRepo.Remove(id)
	if !ok {
		return nil
	}
	n := NotificationFor(event)
	return &n
}

func (s *ClientService) GetByID(ctx context.Context, id domain.ClientID) (*domain.Client, error) {
	client, ok := s.clientRepo.Find(id)
	if !ok {
		return nil, mapper.FormatError("client", "get", domain.ErrNotFound)
	}
	return &client, nil
}

func (s *ClientService) List(ctx context.Context, filter ClientFilter) []domain.Client {
	term := strings.ToLower(filter.Search)
	if term == "" {
		return s.clientRepo.List()
	}
	return s.clientRepo.Filter(func(c domain.Client) bool {
		return containsFold(term, c.Name, c.Company)
	})
}
