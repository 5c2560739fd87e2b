package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/blizon/ops-dashboard/internal/testutil"
)

func TestNotificationFor(t *testing.T) {
	tests := []struct {
		event       domain.ChangeEvent
		title       string
		description string
	}{
		{
			domain.ChangeEvent{Kind: domain.KindClient, Op: domain.ChangeCreated, Label: "Emma Wilson"},
			"Client added successfully", "Emma Wilson has been added to your clients.",
		},
		{
			domain.ChangeEvent{Kind: domain.KindClient, Op: domain.ChangeUpdated, Label: "Emma Wilson"},
			"Client updated successfully", "Emma Wilson's information has been updated.",
		},
		{
			domain.ChangeEvent{Kind: domain.KindTeamMember, Op: domain.ChangeCreated, Label: "Alex Chen"},
			"Team member added successfully", "Alex Chen has been added to your team.",
		},
		{
			domain.ChangeEvent{Kind: domain.KindProject, Op: domain.ChangeUpdated, Label: "CRM Integration"},
			"Project updated successfully", "CRM Integration has been updated.",
		},
		{
			domain.ChangeEvent{Kind: domain.KindIntern, Op: domain.ChangeRemoved, Label: "Ryan Lee"},
			"Intern removed", "Ryan Lee has been removed from your interns.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			n := service.NotificationFor(tt.event)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.description, n.Description)
		})
	}
}

func TestNotificationService_FeedFromStore(t *testing.T) {
	store := testutil.SeededStore()
	feed := service.NewNotificationService(3, zap.NewNop())
	store.Subscribe(feed)

	for i := 0; i < 5; i++ {
		store.Clients.Upsert(domain.Client{ID: domain.ClientID(fmt.Sprintf("c%d", i)), Name: fmt.Sprintf("Client %d", i)})
	}

	recent := feed.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "Client 4 has been added to your clients.", recent[0].Description)
	assert.Len(t, feed.Recent(1), 1)
}

func TestNotificationService_Publish(t *testing.T) {
	feed := service.NewNotificationService(2, zap.NewNop())
	assert.Empty(t, feed.Recent(5))

	feed.Publish(domain.Notification{Title: "first"})
	feed.Publish(domain.Notification{Title: "second"})
	feed.Publish(domain.Notification{Title: "third"})

	recent := feed.Recent(10)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Title)
	assert.Equal(t, "second", recent[1].Title)

	// callers get a copy of the feed
	recent[0].Title = "changed"
	assert.Equal(t, "third", feed.Recent(1)[0].Title)
}

func TestNewNotificationService_DefaultLimit(t *testing.T) {
	feed := service.NewNotificationService(0, zap.NewNop())
	for i := 0; i < service.DefaultNotificationLimit+5; i++ {
		feed.Publish(domain.Notification{Title: fmt.Sprintf("n%d", i)})
	}
	assert.Len(t, feed.Recent(0), service.DefaultNotificationLimit)
}
