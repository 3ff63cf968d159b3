package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"insightiq/backend"
	"insightiq/models"
	"insightiq/workspace"
)

// ListDashboardsHandler relays the backend's dashboards
// @Summary      List dashboards
// @Tags         Dashboards
// @Produce      json
// @Success      200  {object}  models.DashboardList
// @Failure      503  {object}  map[string]string  "Demo mode"
// @Router       /api/v1/dashboards [get]
func (h *Handlers) ListDashboardsHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	resp, err := h.backend.ListDashboards(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDashboardHandler relays one dashboard with its widgets
// @Summary      Get dashboard
// @Tags         Dashboards
// @Produce      json
// @Param        id   path      int  true  "Dashboard ID"
// @Success      200  {object}  models.DashboardResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/dashboards/{id} [get]
func (h *Handlers) GetDashboardHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid dashboard id")
		return
	}
	resp, err := h.backend.GetDashboard(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateDashboardHandler creates a dashboard
// @Summary      Create dashboard
// @Tags         Dashboards
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateDashboardRequest  true  "Dashboard"
// @Success      200      {object}  models.DashboardResponse
// @Failure      400      {object}  map[string]string
// @Router       /api/v1/dashboards [post]
func (h *Handlers) CreateDashboardHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	var req models.CreateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		badRequest(c, "Dashboard name is required")
		return
	}
	resp, err := h.backend.CreateDashboard(c.Request.Context(), strings.TrimSpace(req.Name), req.Description, req.IsPublic)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddWidgetHandler saves a widget to a dashboard
// @Summary      Save to dashboard
// @Description  Add a widget. Omitted title and widget_type come from the session's current result; an omitted query_id is looked up in the backend's recent history by query text.
// @Tags         Dashboards
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true   "Dashboard ID"
// @Param        request  body      models.WidgetRequest  false  "Widget"
// @Success      200      {object}  models.WidgetResponse
// @Failure      400      {object}  map[string]string
// @Router       /api/v1/dashboards/{id}/widgets [post]
func (h *Handlers) AddWidgetHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid dashboard id")
		return
	}

	var req models.WidgetRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
	}

	state := h.workspace(c).Query.State()
	if state.Status == workspace.StatusResult && state.Result != nil {
		if req.Title == "" {
			req.Title = state.Query
		}
		if req.WidgetType == "" {
			req.WidgetType = state.Result.VisualizationType
		}
		if req.QueryID == 0 {
			req.QueryID = h.lookupQueryID(c, state.Query)
		}
	}
	if req.QueryID == 0 {
		badRequest(c, "query_id is required")
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}
	if req.WidgetType == "" {
		req.WidgetType = models.VisualizationTable
	}

	resp, err := h.backend.AddWidget(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// lookupQueryID finds the newest backend query with the given text, or 0.
func (h *Handlers) lookupQueryID(c *gin.Context, query string) int64 {
	hist, err := h.backend.QueryHistory(c.Request.Context(), h.historyLimit)
	if err != nil {
		return 0
	}
	for _, item := range hist.Queries {
		if item.Query == query {
			return item.ID
		}
	}
	return 0
}
