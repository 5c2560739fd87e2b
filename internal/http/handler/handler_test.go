package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/auth"
	"github.com/blizon/ops-dashboard/internal/config"
	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/http/handler"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/blizon/ops-dashboard/internal/service"
	"github.com/blizon/ops-dashboard/internal/testutil"
)

type testEnv struct {
	router        http.Handler
	store         *repository.Store
	sessions      *service.SessionService
	notifications *service.NotificationService
	tokens        *auth.TokenManager
	clock         *testutil.FakeClock
	sessionID     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()
	store := testutil.SeededStore()
	ids := testutil.NewSequentialIDs()
	drafts := repository.NewDraftRepository()

	notifications := service.NewNotificationService(50, log)
	store.Subscribe(notifications)

	clock := testutil.NewFakeClock()
	search := service.NewSearchService(store, nil, log)
	sessions := service.NewSessionService(search, drafts, service.SessionConfig{Clock: clock}, nil, log)
	contracts := service.NewContractService(store, drafts, service.NewMilestoneLedger(ids, nil), ids, log)
	tokens := auth.NewTokenManager("handler-test-key", time.Hour)
	authn := auth.NewAuthenticator(&config.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "secret",
		AdminName:     "Admin User",
		AdminRole:     "Administrator",
	})

	session := sessions.Open(domain.User{Username: "admin", Name: "Admin User", Role: "Administrator"})

	authH := handler.NewAuthHandler(authn, tokens, sessions, log)
	clientH := handler.NewClientHandler(service.NewClientService(store.Clients, ids, log), log)
	projectH := handler.NewProjectHandler(service.NewProjectService(store, ids, log), log)
	teamH := handler.NewTeamHandler(service.NewTeamMemberService(store.TeamMembers, ids, log), log)
	internH := handler.NewInternHandler(service.NewInternService(store.Interns, ids, log), log)
	contractH := handler.NewContractHandler(contracts, log)
	searchH := handler.NewSearchHandler(search, log)
	sessionH := handler.NewSessionHandler(sessions, log)
	dashboardH := handler.NewDashboardHandler(service.NewDashboardService(store, log), log)
	notificationH := handler.NewNotificationHandler(notifications, log)

	r := chi.NewRouter()
	r.Post("/auth/login", authH.Login)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if req.Header.Get("X-No-Session") != "" {
					next.ServeHTTP(w, req)
					return
				}
				ctx := auth.WithUserContext(req.Context(), &auth.UserContext{
					Username:    "admin",
					DisplayName: "Admin User",
					Role:        "Administrator",
					SessionID:   session.ID,
				})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})

		r.Get("/auth/me", authH.Me)
		r.Post("/auth/logout", authH.Logout)

		r.Get("/clients", clientH.List)
		r.Post("/clients", clientH.Create)
		r.Get("/clients/{id}", clientH.GetByID)
		r.Put("/clients/{id}", clientH.Update)
		r.Delete("/clients/{id}", clientH.Delete)

		r.Get("/projects", projectH.List)
		r.Post("/projects", projectH.Create)
		r.Get("/projects/{id}", projectH.GetByID)
		r.Delete("/projects/{id}", projectH.Delete)

		r.Get("/team", teamH.List)
		r.Post("/team", teamH.Create)
		r.Get("/interns", internH.List)
		r.Post("/interns", internH.Create)

		r.Get("/contracts", contractH.List)
		r.Post("/contracts", contractH.Create)
		r.Get("/contracts/drafts", contractH.ListDrafts)
		r.Post("/contracts/drafts", contractH.StartDraft)
		r.Post("/contracts/drafts/from/{contractId}", contractH.EditContract)
		r.Get("/contracts/drafts/{draftId}", contractH.GetDraft)
		r.Put("/contracts/drafts/{draftId}", contractH.SetDraftFields)
		r.Delete("/contracts/drafts/{draftId}", contractH.DiscardDraft)
		r.Post("/contracts/drafts/{draftId}/milestones", contractH.AddMilestone)
		r.Delete("/contracts/drafts/{draftId}/milestones/{index}", contractH.RemoveMilestone)
		r.Post("/contracts/drafts/{draftId}/finalize", contractH.FinalizeDraft)
		r.Get("/contracts/{id}", contractH.GetByID)
		r.Delete("/contracts/{id}", contractH.Delete)
		r.Put("/contracts/{id}/milestones/{milestoneId}/completion", contractH.SetMilestoneCompleted)

		r.Get("/search", searchH.Search)
		r.Get("/session/search", sessionH.GetSearch)
		r.Post("/session/search", sessionH.SubmitSearch)
		r.Post("/session/search/live", sessionH.TypeSearch)
		r.Get("/session/view", sessionH.GetView)
		r.Put("/session/view", sessionH.Navigate)

		r.Get("/dashboard/overview", dashboardH.GetOverview)
		r.Get("/dashboard/stats", dashboardH.GetStats)
		r.Get("/calendar", dashboardH.GetDay)
		r.Get("/calendar/events", dashboardH.GetRange)
		r.Get("/notifications", notificationH.List)
	})

	return &testEnv{
		router:        r,
		store:         store,
		sessions:      sessions,
		notifications: notifications,
		tokens:        tokens,
		clock:         clock,
		sessionID:     session.ID,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type mutation[T any] struct {
	Data         T                    `json:"data"`
	Notification *domain.Notification `json:"notification"`
}

type list[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func validClient() domain.ClientRequest {
	return domain.ClientRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "555-0100",
		Company: "Analytical Engines",
		Address: "12 Marylebone",
	}
}

func newRequestWithoutSession(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-No-Session", "1")
	return req
}

func serveRaw(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
