package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/blizon/ops-dashboard/internal/testutil"
)

const testSession = "session-1"

func createContractService(store *repository.Store) (*service.ContractService, *repository.DraftRepository) {
	ids := testutil.NewSequentialIDs()
	drafts := repository.NewDraftRepository()
	ledger := service.NewMilestoneLedger(ids, nil)
	return service.NewContractService(store, drafts, ledger, ids, zap.NewNop()), drafts
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func headerFields() *domain.ContractFieldsRequest {
	client := domain.ClientID("client3")
	project := domain.ProjectID("project3")
	return &domain.ContractFieldsRequest{
		Title:       strPtr("CRM Support Retainer"),
		ClientID:    &client,
		ProjectID:   &project,
		Description: strPtr("Post-launch CRM support"),
		StartDate:   timePtr(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:     timePtr(time.Date(2023, 10, 31, 0, 0, 0, 0, time.UTC)),
	}
}

func TestContractService_DraftLifecycle(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, testSession, headerFields())
	require.NoError(t, err)

	draft, err = svc.AddMilestone(ctx, testSession, draft.ID, milestoneInput("Design", 500))
	require.NoError(t, err)
	draft, err = svc.AddMilestone(ctx, testSession, draft.ID, milestoneInput("Build", 1500))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(draft.TotalValue))

	draft, err = svc.RemoveMilestone(ctx, testSession, draft.ID, 0)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(draft.TotalValue))

	dto, n, err := svc.FinalizeDraft(ctx, testSession, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractID("contract-new1"), dto.ID)
	assert.Equal(t, "Michael Davis", dto.ClientName)
	assert.Equal(t, "CRM Integration", dto.ProjectName)
	assert.Equal(t, "Contract added successfully", n.Title)
	assert.Equal(t, "CRM Support Retainer has been added to your contracts.", n.Description)

	stored, ok := store.Contracts.Find(dto.ID)
	require.True(t, ok)
	assert.True(t, stored.TotalValue.Equal(stored.MilestoneSum()))
	assert.Equal(t, dto.ID, store.Contracts.List()[0].ID)

	_, err = svc.GetDraft(ctx, testSession, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "finalized drafts are discarded")
}

func TestContractService_FinalizeEmptyDraftLeavesStoreUnchanged(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()
	before := store.Contracts.List()

	draft, err := svc.StartDraft(ctx, testSession, headerFields())
	require.NoError(t, err)

	_, _, err = svc.FinalizeDraft(ctx, testSession, draft.ID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, before, store.Contracts.List())
	_, err = svc.GetDraft(ctx, testSession, draft.ID)
	assert.NoError(t, err, "a rejected draft stays open for correction")
}

func TestContractService_FailedMilestoneLeavesDraftUnchanged(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()
	draft, err := svc.StartDraft(ctx, testSession, nil)
	require.NoError(t, err)
	_, err = svc.AddMilestone(ctx, testSession, draft.ID, milestoneInput("Design", 500))
	require.NoError(t, err)

	_, err = svc.RemoveMilestone(ctx, testSession, draft.ID, 3)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	bad := milestoneInput("", 100)
	_, err = svc.AddMilestone(ctx, testSession, draft.ID, bad)
	assert.ErrorIs(t, err, domain.ErrValidation)

	current, err := svc.GetDraft(ctx, testSession, draft.ID)
	require.NoError(t, err)
	assert.Len(t, current.Milestones, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(current.TotalValue))
}

func TestContractService_DraftsBelongToSession(t *testing.T) {
	svc, _ := createContractService(testutil.SeededStore())
	ctx := context.Background()
	draft, err := svc.StartDraft(ctx, testSession, nil)
	require.NoError(t, err)

	_, err = svc.AddMilestone(ctx, "other-session", draft.ID, milestoneInput("Design", 500))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractService_EditContractKeepsID(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()

	draft, err := svc.EditContract(ctx, testSession, "contract2")
	require.NoError(t, err)
	assert.Equal(t, domain.DraftModeEdit, draft.Mode)
	require.Len(t, draft.Milestones, 4)

	draft, err = svc.RemoveMilestone(ctx, testSession, draft.ID, 3)
	require.NoError(t, err)

	dto, n, err := svc.FinalizeDraft(ctx, testSession, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractID("contract2"), dto.ID)
	assert.Equal(t, domain.ChangeUpdated, n.Op)
	assert.Equal(t, "Contract updated successfully", n.Title)
	assert.True(t, decimal.NewFromInt(32000).Equal(dto.TotalValue))
	assert.Equal(t, 2, store.Contracts.Count())
}

func TestContractService_EditRejectsManualTotal(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()

	draft, err := svc.EditContract(ctx, testSession, "contract1")
	require.NoError(t, err)
	assert.True(t, draft.LedgerTouched)

	manual := decimal.NewFromInt(5)
	_, err = svc.SetDraftFields(ctx, testSession, draft.ID, &domain.ContractFieldsRequest{TotalValue: &manual})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = svc.FinalizeDraft(ctx, testSession, draft.ID)
	require.NoError(t, err)

	stored, ok := store.Contracts.Find("contract1")
	require.True(t, ok)
	assert.True(t, domain.SumMilestones(stored.Milestones).Equal(stored.TotalValue))
	assert.False(t, manual.Equal(stored.TotalValue))
}

func TestContractService_EditRemovingAllMilestones(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()

	draft, err := svc.EditContract(ctx, testSession, "contract2")
	require.NoError(t, err)
	for range draft.Milestones {
		_, err = svc.RemoveMilestone(ctx, testSession, draft.ID, 0)
		require.NoError(t, err)
	}

	dto, n, err := svc.FinalizeDraft(ctx, testSession, draft.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.ChangeUpdated, n.Op)
	assert.Empty(t, dto.Milestones)
	assert.True(t, dto.TotalValue.IsZero())
	stored, ok := store.Contracts.Find("contract2")
	require.True(t, ok)
	assert.Empty(t, stored.Milestones)
	assert.True(t, stored.TotalValue.IsZero())
}

func TestContractService_UpdateRecordWithoutMilestones(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)

	dto, _, err := svc.Update(context.Background(), "contract1", &domain.ContractRequest{
		Title:       "Website Redesign",
		ClientID:    "client1",
		ProjectID:   "project1",
		Description: "Milestones to be agreed",
		StartDate:   time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2023, 8, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ContractID("contract1"), dto.ID)
	assert.True(t, dto.TotalValue.IsZero())
	assert.Equal(t, 2, store.Contracts.Count())
}

func TestContractService_EditUnknownContract(t *testing.T) {
	svc, _ := createContractService(testutil.SeededStore())

	_, err := svc.EditContract(context.Background(), testSession, "contract404")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractService_CreateRecordDerivesTotal(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)

	dto, _, err := svc.Create(context.Background(), &domain.ContractRequest{
		Title:       "Dashboard Maintenance",
		ClientID:    "client4",
		ProjectID:   "project4",
		Description: "Quarterly maintenance",
		StartDate:   time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
		Milestones: []domain.ContractMilestone{
			{Title: "Q1", Description: "First quarter", DueDate: time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2500)},
			{Title: "Q2", Description: "Second quarter", DueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("2500.50"), IsCompleted: true},
		},
	})

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5000.50").Equal(dto.TotalValue))
	assert.Equal(t, 1, dto.CompletedMilestones)
	assert.Equal(t, 50, dto.Progress)
	for _, m := range dto.Milestones {
		assert.NotEmpty(t, m.ID)
	}
}

func TestContractService_CreateRecordWithoutMilestones(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)

	_, _, err := svc.Create(context.Background(), &domain.ContractRequest{
		Title:       "Empty",
		Description: "No plan",
		StartDate:   time.Now(),
		EndDate:     time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 2, store.Contracts.Count())
}

func TestContractService_SetMilestoneCompleted(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()

	dto, err := svc.SetMilestoneCompleted(ctx, "contract1", "milestone1-2", true)
	require.NoError(t, err)
	assert.Equal(t, 2, dto.CompletedMilestones)
	assert.Equal(t, 50, dto.Progress)

	_, err = svc.SetMilestoneCompleted(ctx, "contract1", "milestone9-9", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractService_ListSearchesResolvedNames(t *testing.T) {
	store := testutil.SeededStore()
	svc, _ := createContractService(store)
	ctx := context.Background()

	byClient := svc.List(ctx, service.ContractFilter{Search: "sarah"})
	require.Len(t, byClient, 1)
	assert.Equal(t, domain.ContractID("contract2"), byClient[0].ID)

	byProject := svc.List(ctx, service.ContractFilter{Search: "redesign"})
	require.Len(t, byProject, 1)
	assert.Equal(t, domain.ContractID("contract1"), byProject[0].ID)

	store.Projects.Remove("project1")
	assert.Empty(t, svc.List(ctx, service.ContractFilter{Search: "redesign"}))
}
