package handler

import (
	"net/http"
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"go.uber.org/zap"
)

// maxCalendarRange bounds /calendar/events queries
const maxCalendarRange = 366 * 24 * time.Hour

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
	now              func() time.Time
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
		now:              time.Now,
	}
}

// @Summary Get dashboard overview
// @Description Headline counters plus the most recent projects, the latest contracts and upcoming project deadlines
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardOverview
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.Overview(r.Context()))
}

// @Summary Get dashboard stats
// @Description Headline counters only
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.OverviewStats
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboardService.Stats(r.Context()))
}

// @Summary Get calendar day
// @Description Project deadlines and milestone due dates falling on one day. Defaults to today.
// @Tags Calendar
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} domain.ListResponse{data=[]domain.CalendarEvent}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /calendar [get]
func (h *DashboardHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateParam(r, "date", h.now().UTC())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	events := h.dashboardService.EventsOn(r.Context(), day)
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: events, Total: len(events)})
}

// @Summary Get calendar range
// @Description Events with from <= date <= to, ordered by date. Defaults to the next 30 days.
// @Tags Calendar
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} domain.ListResponse{data=[]domain.CalendarEvent}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /calendar/events [get]
func (h *DashboardHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	today := h.now().UTC()
	from, err := parseDateParam(r, "from", today)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "to", from.AddDate(0, 0, 30))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if to.Before(from) {
		respondWithError(w, http.StatusBadRequest, "to must not be before from")
		return
	}
	if to.Sub(from) > maxCalendarRange {
		respondWithError(w, http.StatusBadRequest, "range must not exceed one year")
		return
	}

	events := h.dashboardService.EventsBetween(r.Context(), from, to)
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: events, Total: len(events)})
}
