package handler

import (
	"net/http"

	"github.com/blizon/ops-dashboard/internal/service"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
	logger        *zap.Logger
}

func NewSearchHandler(searchService *service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search godoc
// @Summary Search all collections
// @Description Stateless one-shot search over clients, projects, team, interns and contracts.
// @Description `focus` names the section that should receive focus; it is empty when the query is blank or nothing matched.
// @Tags Search
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} domain.SearchResults
// @Security BearerAuth
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results := h.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, results)
}

