package repository_test

import (
	"errors"
	"testing"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftRepository_ScopedToSession(t *testing.T) {
	repo := repository.NewDraftRepository()
	repo.Save("session-a", domain.ContractDraft{ID: "draft1", Title: "Retainer"})

	_, err := repo.Get("session-b", "draft1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repo.Get("session-a", "draft1")
	require.NoError(t, err)
	assert.Equal(t, "Retainer", got.Title)
}

func TestDraftRepository_UpdateCommitsOnSuccess(t *testing.T) {
	repo := repository.NewDraftRepository()
	repo.Save("s", domain.ContractDraft{ID: "draft1"})

	updated, err := repo.Update("s", "draft1", func(d *domain.ContractDraft) error {
		d.TotalValue = decimal.NewFromInt(500)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(updated.TotalValue))
	stored, _ := repo.Get("s", "draft1")
	assert.True(t, decimal.NewFromInt(500).Equal(stored.TotalValue))
}

func TestDraftRepository_UpdateDiscardsOnError(t *testing.T) {
	repo := repository.NewDraftRepository()
	repo.Save("s", domain.ContractDraft{ID: "draft1", Title: "Original"})
	boom := errors.New("boom")

	_, err := repo.Update("s", "draft1", func(d *domain.ContractDraft) error {
		d.Title = "Changed"
		d.Milestones = append(d.Milestones, domain.ContractMilestone{ID: "m1"})
		return boom
	})

	assert.ErrorIs(t, err, boom)
	stored, _ := repo.Get("s", "draft1")
	assert.Equal(t, "Original", stored.Title)
	assert.Empty(t, stored.Milestones)
}

func TestDraftRepository_DeleteSession(t *testing.T) {
	repo := repository.NewDraftRepository()
	repo.Save("s1", domain.ContractDraft{ID: "draft1"})
	repo.Save("s1", domain.ContractDraft{ID: "draft2"})
	repo.Save("s2", domain.ContractDraft{ID: "draft3"})

	assert.Equal(t, 2, repo.DeleteSession("s1"))
	assert.Empty(t, repo.ListForSession("s1"))
	assert.Len(t, repo.ListForSession("s2"), 1)
}

func TestDraftRepository_DeleteIgnoresOtherSessions(t *testing.T) {
	repo := repository.NewDraftRepository()
	repo.Save("s1", domain.ContractDraft{ID: "draft1"})

	repo.Delete("s2", "draft1")

	_, err := repo.Get("s1", "draft1")
	assert.NoError(t, err)
}
