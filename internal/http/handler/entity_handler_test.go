package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blizon/ops-dashboard/internal/domain"
)

func TestClientHandler_CreateListDelete(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/clients", validClient())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[mutation[domain.Client]](t, w)
	assert.Equal(t, domain.ClientID("client-new1"), created.Data.ID)
	assert.Equal(t, "/api/v1/clients/client-new1", w.Header().Get("Location"))
	require.NotNil(t, created.Notification)
	assert.Equal(t, "Client added successfully", created.Notification.Title)
	assert.Equal(t, "Ada Lovelace has been added to your clients.", created.Notification.Description)

	w = env.do(t, http.MethodGet, "/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	clients := decode[list[domain.Client]](t, w)
	require.Equal(t, 5, clients.Total)
	assert.Equal(t, domain.ClientID("client-new1"), clients.Data[0].ID)

	w = env.do(t, http.MethodDelete, "/clients/client-new1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	removed := decode[mutation[*domain.Client]](t, w)
	require.NotNil(t, removed.Notification)
	assert.Equal(t, domain.ChangeRemoved, removed.Notification.Op)
	assert.Equal(t, 4, env.store.Clients.Count())

	// absent ids are ignored
	w = env.do(t, http.MethodDelete, "/clients/client-new1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[mutation[*domain.Client]](t, w).Notification)
}

func TestClientHandler_Validation(t *testing.T) {
	env := newTestEnv(t)
	req := validClient()
	req.Email = "not-an-email"
	req.Name = ""

	w := env.do(t, http.MethodPost, "/clients", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decode[domain.APIError](t, w)
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Errors, "email")
	assert.Contains(t, apiErr.Errors, "name")
	assert.Equal(t, 4, env.store.Clients.Count())
}

func TestClientHandler_UpdateUpserts(t *testing.T) {
	env := newTestEnv(t)
	req := validClient()

	w := env.do(t, http.MethodPut, "/clients/client2", req)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[mutation[domain.Client]](t, w)
	assert.Equal(t, domain.ChangeUpdated, updated.Notification.Op)

	clients := env.store.Clients.List()
	assert.Equal(t, domain.ClientID("client2"), clients[1].ID)
	assert.Equal(t, "Ada Lovelace", clients[1].Name)

	w = env.do(t, http.MethodPut, "/clients/client-x", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ChangeCreated, decode[mutation[domain.Client]](t, w).Notification.Op)
	assert.Equal(t, domain.ClientID("client-x"), env.store.Clients.List()[0].ID)
}

func TestClientHandler_GetByID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/clients/client1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "John Smith", decode[domain.Client](t, w).Name)

	w = env.do(t, http.MethodGet, "/clients/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_ListResolvesNames(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/projects?clientId=client1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	projects := decode[list[domain.ProjectDTO]](t, w)
	require.Equal(t, 1, projects.Total)
	assert.Equal(t, "John Smith", projects.Data[0].ClientName)

	w = env.do(t, http.MethodGet, "/projects?status=Active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[list[domain.ProjectDTO]](t, w).Total)

	w = env.do(t, http.MethodGet, "/projects?status=Paused", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_DeleteKeepsContracts(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodDelete, "/projects/project1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/contracts/contract1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	contract := decode[domain.ContractDTO](t, w)
	assert.Equal(t, domain.ProjectID("project1"), contract.ProjectID)
}

func TestInternHandler_StatusFilter(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/interns?status=Postponed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	interns := decode[list[domain.Intern]](t, w)
	require.Equal(t, 1, interns.Total)
	assert.Equal(t, domain.InternID("intern3"), interns.Data[0].ID)

	w = env.do(t, http.MethodGet, "/interns?status=Gone", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTeamHandler_Create(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/team", domain.TeamMemberRequest{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Phone:    "555-0199",
		Position: "Engineer",
		JoinedDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Team member added successfully", decode[mutation[domain.TeamMember]](t, w).Notification.Title)

	w = env.do(t, http.MethodGet, "/team?search=grace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[list[domain.TeamMember]](t, w).Total)
}

func TestNotificationHandler_List(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/clients", validClient())
	env.do(t, http.MethodDelete, "/clients/client1", nil)

	w := env.do(t, http.MethodGet, "/notifications?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[list[domain.Notification]](t, w)
	require.Len(t, items.Data, 1)
	assert.Equal(t, "Client removed", items.Data[0].Title)

	w = env.do(t, http.MethodGet, "/notifications?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
