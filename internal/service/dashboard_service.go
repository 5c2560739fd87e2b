package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/repository"
)

const (
	recentProjectsLimit    = 3
	latestContractsLimit   = 2
	upcomingDeadlinesLimit = 4
)

// DashboardService builds the overview and calendar read models
type DashboardService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewDashboardService(store *repository.Store, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger,
	}
}

// Stats counts records across the collections
func (s *DashboardService) Stats(ctx context.Context) domain.OverviewStats {
	projects := s.store.Projects.List()
	interns := s.store.Interns.List()

	stats := domain.OverviewStats{
		TotalClients:       s.store.Clients.Count(),
		TeamMembers:        s.store.TeamMembers.Count(),
		ProjectsByStatus:   map[domain.ProjectStatus]int{},
		InternsByStatus:    map[domain.InternStatus]int{},
		TotalContractValue: decimal.Zero,
	}
	for _, p := range projects {
		stats.ProjectsByStatus[p.Status]++
		if p.Status == domain.ProjectStatusActive {
			stats.ActiveProjects++
		}
	}
	for _, i := range interns {
		stats.InternsByStatus[i.Status]++
		if i.Status == domain.InternStatusOnboard {
			stats.OnboardedInterns++
		}
	}
	for _, c := range s.store.Contracts.List() {
		stats.TotalContractValue = stats.TotalContractValue.Add(c.TotalValue)
	}
	return stats
}

// Overview returns stats plus the recent projects, latest contracts and the
// nearest deadlines of projects that are still running.
func (s *DashboardService) Overview(ctx context.Context) domain.DashboardOverview {
	projects := s.store.Projects.List()
	contracts := s.store.Contracts.List()

	running := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status == domain.ProjectStatusActive || p.Status == domain.ProjectStatusWorking {
			running = append(running, p)
		}
	}
	sort.SliceStable(running, func(i, j int) bool {
		return running[i].EndDate.Before(running[j].EndDate)
	})

	return domain.DashboardOverview{
		Stats:             s.Stats(ctx),
		RecentProjects:    projectDTOs(s.store, head(projects, recentProjectsLimit)),
		LatestContracts:   contractDTOs(s.store, head(contracts, latestContractsLimit)),
		UpcomingDeadlines: projectDTOs(s.store, head(running, upcomingDeadlinesLimit)),
	}
}

// Events lists project deadlines and milestone due dates. Project
// deadlines come first, then milestones in contract order.
func (s *DashboardService) Events(ctx context.Context) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0)
	for _, p := range s.store.Projects.List() {
		events = append(events, domain.CalendarEvent{
			Date:        p.EndDate,
			Title:       "Project Deadline: " + p.Name,
			Description: p.Description,
			Type:        domain.CalendarEventProject,
			RefID:       string(p.ID),
		})
	}
	for _, c := range s.store.Contracts.List() {
		for _, m := range c.Milestones {
			events = append(events, domain.CalendarEvent{
				Date:        m.DueDate,
				Title:       "Milestone: " + m.Title,
				Description: c.Title + " - " + m.Description,
				Type:        domain.CalendarEventMilestone,
				RefID:       string(c.ID),
			})
		}
	}
	return events
}

// EventsOn returns the events falling on the calendar day of day
func (s *DashboardService) EventsOn(ctx context.Context, day time.Time) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0)
	for _, e := range s.Events(ctx) {
		if sameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return out
}

// EventsBetween returns events from the start of from's day to the end of
// to's day, ordered by date.
func (s *DashboardService) EventsBetween(ctx context.Context, from, to time.Time) []domain.CalendarEvent {
	start := startOfDay(from)
	end := startOfDay(to).AddDate(0, 0, 1)

	out := make([]domain.CalendarEvent, 0)
	for _, e := range s.Events(ctx) {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// MilestonesDueBetween lists open milestones due in [from, to)
func (s *DashboardService) MilestonesDueBetween(ctx context.Context, from, to time.Time) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0)
	for _, c := range s.store.Contracts.List() {
		for _, m := range c.Milestones {
			if m.IsCompleted || m.DueDate.Before(from) || !m.DueDate.Before(to) {
				continue
			}
			out = append(out, domain.CalendarEvent{
				Date:        m.DueDate,
				Title:       "Milestone: " + m.Title,
				Description: c.Title + " - " + m.Description,
				Type:        domain.CalendarEventMilestone,
				RefID:       string(c.ID),
			})
		}
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
