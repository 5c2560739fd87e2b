package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/service"
	"go.uber.org/zap"
)

const defaultNotificationLimit = 20

// NotificationHandler serves the feed of recent change confirmations
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List godoc
// @Summary List notifications
// @Description Most recent notifications first, including milestone reminders
// @Tags Notifications
// @Produce json
// @Param limit query int false "Maximum number of entries" default(20)
// @Success 200 {object} domain.ListResponse{data=[]domain.Notification}
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultNotificationLimit)
	if limit < 1 {
		respondWithError(w, http.StatusBadRequest, "limit must be positive")
		return
	}

	items := h.notificationService.Recent(limit)
	respondJSON(w, http.StatusOK, domain.ListResponse{Data: items, Total: len(items)})
}
