package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blizon/ops-dashboard/internal/domain"
)

func TestDashboardHandler_Stats(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[domain.OverviewStats](t, w)
	assert.Equal(t, 4, stats.TotalClients)
	assert.Equal(t, 2, stats.ActiveProjects)

	w = env.do(t, http.MethodGet, "/dashboard/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	overview := decode[domain.DashboardOverview](t, w)
	assert.Equal(t, stats.TotalClients, overview.Stats.TotalClients)
	assert.NotEmpty(t, overview.LatestContracts)
}

func TestDashboardHandler_CalendarDay(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/calendar?date=2023-05-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[list[domain.CalendarEvent]](t, w)
	require.NotEmpty(t, events.Data)
	for _, e := range events.Data {
		assert.Equal(t, "2023-05-15", e.Date.Format("2006-01-02"))
	}

	w = env.do(t, http.MethodGet, "/calendar?date=15.05.2023", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardHandler_CalendarRange(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/calendar/events?from=2023-04-01&to=2023-06-30", nil)
	require.Equal(t, http.StatusOK, w.Code)
	events := decode[list[domain.CalendarEvent]](t, w)
	require.NotEmpty(t, events.Data)
	for i := 1; i < len(events.Data); i++ {
		assert.False(t, events.Data[i].Date.Before(events.Data[i-1].Date))
	}

	w = env.do(t, http.MethodGet, "/calendar/events?from=2023-06-30&to=2023-04-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/calendar/events?from=2020-01-01&to=2023-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
