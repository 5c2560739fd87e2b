package repository_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClients() []domain.Client {
	return []domain.Client{
		{ID: "client1", Name: "John Smith", Company: "Smith Enterprises"},
		{ID: "client2", Name: "Sarah Johnson", Company: "Johnson Solutions"},
	}
}

func clientIDs(clients []domain.Client) []domain.ClientID {
	ids := make([]domain.ClientID, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return ids
}

func TestCollection_UpsertUnknownIDPrepends(t *testing.T) {
	repo := repository.NewClientRepository(sampleClients())

	event := repo.Upsert(domain.Client{ID: "client9", Name: "New Client"})

	assert.Equal(t, domain.ChangeCreated, event.Op)
	assert.Equal(t, domain.KindClient, event.Kind)
	assert.Equal(t, "client9", event.ID)
	assert.Equal(t, "New Client", event.Label)
	assert.Equal(t, []domain.ClientID{"client9", "client1", "client2"}, clientIDs(repo.List()))
}

func TestCollection_UpsertKnownIDReplacesInPlace(t *testing.T) {
	repo := repository.NewClientRepository(sampleClients())

	event := repo.Upsert(domain.Client{ID: "client2", Name: "Sarah J. Johnson"})

	assert.Equal(t, domain.ChangeUpdated, event.Op)
	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, []domain.ClientID{"client1", "client2"}, clientIDs(list))
	assert.Equal(t, "Sarah J. Johnson", list[1].Name)
}

func TestCollection_UpsertIsIdempotent(t *testing.T) {
	repo := repository.NewClientRepository(sampleClients())
	c := domain.Client{ID: "client3", Name: "Michael Davis"}

	repo.Upsert(c)
	once := repo.List()
	repo.Upsert(c)

	assert.Equal(t, once, repo.List())
	assert.Equal(t, 3, repo.Count())
}

func TestCollection_RemoveAbsentIsNoop(t *testing.T) {
	repo := repository.NewClientRepository(sampleClients())
	before := repo.List()

	_, removed := repo.Remove("client404")

	assert.False(t, removed)
	assert.Equal(t, before, repo.List())
}

func TestCollection_RemoveKeepsOrder(t *testing.T) {
	seed := append(sampleClients(), domain.Client{ID: "client3", Name: "Michael Davis"})
	repo := repository.NewClientRepository(seed)

	event, removed := repo.Remove("client2")

	require.True(t, removed)
	assert.Equal(t, domain.ChangeRemoved, event.Op)
	assert.Equal(t, "Sarah Johnson", event.Label)
	assert.Equal(t, []domain.ClientID{"client1", "client3"}, clientIDs(repo.List()))
	_, found := repo.Find("client2")
	assert.False(t, found)
}

func TestCollection_SnapshotsAreIsolated(t *testing.T) {
	repo := repository.NewProjectRepository([]domain.Project{
		{ID: "project1", Name: "E-commerce Website Redesign", TeamMemberIDs: []domain.TeamMemberID{"team1"}},
	})

	list := repo.List()
	list[0].Name = "mutated"
	list[0].TeamMemberIDs[0] = "team9"

	found, ok := repo.Find("project1")
	require.True(t, ok)
	assert.Equal(t, "E-commerce Website Redesign", found.Name)
	assert.Equal(t, []domain.TeamMemberID{"team1"}, found.TeamMemberIDs)
}

func TestCollection_SeedIsCopied(t *testing.T) {
	seed := sampleClients()
	repo := repository.NewClientRepository(seed)

	seed[0].Name = "changed after construction"

	found, ok := repo.Find("client1")
	require.True(t, ok)
	assert.Equal(t, "John Smith", found.Name)
}

func TestCollection_Filter(t *testing.T) {
	repo := repository.NewClientRepository(sampleClients())

	out := repo.Filter(func(c domain.Client) bool { return c.Company == "Johnson Solutions" })

	require.Len(t, out, 1)
	assert.Equal(t, domain.ClientID("client2"), out[0].ID)
}

func TestStore_SubscribeReceivesEveryKind(t *testing.T) {
	store := repository.NewStore(repository.Seed{})
	var events []domain.ChangeEvent
	store.Subscribe(repository.ChangeListenerFunc(func(e domain.ChangeEvent) {
		events = append(events, e)
	}))

	store.Clients.Upsert(domain.Client{ID: "client1"})
	store.Projects.Upsert(domain.Project{ID: "project1"})
	store.TeamMembers.Upsert(domain.TeamMember{ID: "team1"})
	store.Interns.Upsert(domain.Intern{ID: "intern1"})
	store.Contracts.Upsert(domain.Contract{ID: "contract1"})
	store.Contracts.Remove("contract1")
	store.Contracts.Remove("contract1")

	require.Len(t, events, 6)
	kinds := []domain.EntityKind{}
	for _, e := range events[:5] {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []domain.EntityKind{
		domain.KindClient, domain.KindProject, domain.KindTeamMember, domain.KindIntern, domain.KindContract,
	}, kinds)
	assert.Equal(t, domain.ChangeRemoved, events[5].Op)
}

func TestStore_CollectionsAreIndependent(t *testing.T) {
	store := repository.NewStore(repository.Seed{
		Clients: sampleClients(),
	})

	store.Projects.Upsert(domain.Project{ID: "project1", ClientID: "client1"})
	store.Clients.Remove("client1")

	p, ok := store.Projects.Find("project1")
	require.True(t, ok)
	assert.Equal(t, domain.ClientID("client1"), p.ClientID)
}

func TestCollection_ConcurrentUpserts(t *testing.T) {
	repo := repository.NewInternRepository(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo.Upsert(domain.Intern{ID: domain.InternID(fmt.Sprintf("intern%d", i))})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count())
}

func TestStore_CountByKind(t *testing.T) {
	store := repository.NewStore(repository.Seed{
		Clients:   sampleClients(),
		Contracts: []domain.Contract{{ID: "contract1"}},
	})

	assert.Equal(t, 2, store.Count(domain.KindClient))
	assert.Equal(t, 1, store.Count(domain.KindContract))
	assert.Equal(t, 0, store.Count(domain.KindIntern))
	assert.Equal(t, 0, store.Count("unknown"))
	assert.Len(t, repository.Kinds(), 5)
}
