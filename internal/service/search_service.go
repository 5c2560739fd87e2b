package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/metrics"
	"github.com/blizon/ops-dashboard/internal/repository"
)

// focusPrecedence is the order in which non-empty result sets claim focus
var focusPrecedence = []domain.EntityKind{
	domain.KindClient,
	domain.KindProject,
	domain.KindTeamMember,
	domain.KindIntern,
	domain.KindContract,
}

// SearchService filters all five collections for one query and decides
// which section should take focus.
type SearchService struct {
	store   *repository.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewSearchService(store *repository.Store, m *metrics.Metrics, logger *zap.Logger) *SearchService {
	return &SearchService{
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// Search matches query case-insensitively as a substring of each kind's
// searchable fields. A blank query yields five empty sets and no focus.
func (s *SearchService) Search(ctx context.Context, query string) domain.SearchResults {
	results := domain.SearchResults{
		Query:       query,
		Clients:     []domain.Client{},
		Projects:    []domain.Project{},
		TeamMembers: []domain.TeamMember{},
		Interns:     []domain.Intern{},
		Contracts:   []domain.Contract{},
	}
	if strings.TrimSpace(query) == "" {
		return results
	}

	start := time.Now()
	term := strings.ToLower(query)

	results.Clients = s.store.Clients.Filter(func(c domain.Client) bool {
		return containsFold(term, c.Name, c.Company, c.Email)
	})
	results.Projects = s.store.Projects.Filter(func(p domain.Project) bool {
		return containsFold(term, p.Name, p.Description)
	})
	results.TeamMembers = s.store.TeamMembers.Filter(func(m domain.TeamMember) bool {
		return containsFold(term, m.Name, m.Position, m.Department)
	})
	results.Interns = s.store.Interns.Filter(func(i domain.Intern) bool {
		return containsFold(term, i.Name, i.University, i.Department)
	})
	results.Contracts = s.store.Contracts.Filter(func(c domain.Contract) bool {
		return containsFold(term, c.Title, c.Description)
	})

	counts := map[domain.EntityKind]int{
		domain.KindClient:     len(results.Clients),
		domain.KindProject:    len(results.Projects),
		domain.KindTeamMember: len(results.TeamMembers),
		domain.KindIntern:     len(results.Interns),
		domain.KindContract:   len(results.Contracts),
	}
	for _, kind := range focusPrecedence {
		results.Total += counts[kind]
		if results.Focus == "" && counts[kind] > 0 {
			results.Focus = domain.SectionForKind(kind)
		}
	}
	results.NoResults = results.Total == 0

	s.metrics.RecordSearch(results.Focus, time.Since(start))
	s.logger.Debug("search evaluated",
		zap.String("query", query),
		zap.Int("total", results.Total),
		zap.String("focus", string(results.Focus)))
	return results
}
