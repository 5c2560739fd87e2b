package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
)

// DefaultNotificationLimit bounds the recent notification feed
const DefaultNotificationLimit = 50

type notificationText struct {
	added         string
	updated       string
	removed       string
	collection    string
	updatedSuffix string
}

var notificationTexts = map[domain.EntityKind]notificationText{
	domain.KindClient: {
		added:         "Client added successfully",
		updated:       "Client updated successfully",
		removed:       "Client removed",
		collection:    "clients",
		updatedSuffix: "'s information has been updated.",
	},
	domain.KindProject: {
		added:         "Project added successfully",
		updated:       "Project updated successfully",
		removed:       "Project removed",
		collection:    "projects",
		updatedSuffix: " has been updated.",
	},
	domain.KindTeamMember: {
		added:         "Team member added successfully",
		updated:       "Team member updated",
		removed:       "Team member removed",
		collection:    "team",
		updatedSuffix: "'s information has been updated.",
	},
	domain.KindIntern: {
		added:         "Intern added successfully",
		updated:       "Intern updated successfully",
		removed:       "Intern removed",
		collection:    "interns",
		updatedSuffix: "'s information has been updated.",
	},
	domain.KindContract: {
		added:         "Contract added successfully",
		updated:       "Contract updated successfully",
		removed:       "Contract removed",
		collection:    "contracts",
		updatedSuffix: " has been updated.",
	},
}

// NotificationFor renders the user-facing confirmation of a store mutation
func NotificationFor(event domain.ChangeEvent) domain.Notification {
	n := domain.Notification{Kind: event.Kind, Op: event.Op, At: event.At}
	text, ok := notificationTexts[event.Kind]
	if !ok {
		n.Title = "Saved"
		n.Description = event.Label
		return n
	}

	switch event.Op {
	case domain.ChangeCreated:
		n.Title = text.added
		n.Description = fmt.Sprintf("%s has been added to your %s.", event.Label, text.collection)
	case domain.ChangeUpdated:
		n.Title = text.updated
		n.Description = event.Label + text.updatedSuffix
	case domain.ChangeRemoved:
		n.Title = text.removed
		n.Description = fmt.Sprintf("%s has been removed from your %s.", event.Label, text.collection)
	}
	return n
}

// NotificationService keeps a bounded feed of recent mutation confirmations.
// It subscribes to the entity store as a change listener.
type NotificationService struct {
	mu     sync.RWMutex
	items  []domain.Notification
	limit  int
	logger *zap.Logger
}

// NewNotificationService creates a feed holding at most limit entries
func NewNotificationService(limit int, logger *zap.Logger) *NotificationService {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	return &NotificationService{
		items:  make([]domain.Notification, 0, limit),
		limit:  limit,
		logger: logger,
	}
}

// OnChange records the notification for event
func (s *NotificationService) OnChange(event domain.ChangeEvent) {
	s.Publish(NotificationFor(event))
	s.logger.Info("store changed",
		zap.String("kind", string(event.Kind)),
		zap.String("op", string(event.Op)),
		zap.String("id", event.ID))
}

// Publish prepends n to the feed, dropping the oldest entry beyond the limit
func (s *NotificationService) Publish(n domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]domain.Notification{n}, s.items...)
	if len(s.items) > s.limit {
		s.items = s.items[:s.limit]
	}
}

// Recent returns up to n notifications, newest first. n <= 0 returns all.
func (s *NotificationService) Recent(n int) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.items) {
		n = len(s.items)
	}
	out := make([]domain.Notification, n)
	copy(out, s.items[:n])
	return out
}
