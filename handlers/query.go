package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"insightiq/backend"
	"insightiq/models"
	"insightiq/overview"
	"insightiq/workspace"
)

// QueryHandler runs a natural-language query for the caller's session
// @Summary      Ask a question
// @Description  Submit a natural-language question against the active dataset. The response is the query state after the call: a result with its rendered view, or an error.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryRequest    true  "Question; dataset_id selects a dataset first"
// @Header       200      {string}  X-User-ID              "Optional session id"
// @Success      200      {object}  workspace.QueryState   "Query result"
// @Failure      400      {object}  map[string]string      "Validation error"
// @Failure      409      {object}  map[string]string      "Superseded by a newer query"
// @Failure      502      {object}  map[string]string      "Backend unreachable"
// @Router       /api/v1/query [post]
func (h *Handlers) QueryHandler(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	ws := h.workspace(c)
	// demo mode has no datasets; dataset_id is ignored there
	if req.DatasetID != nil && ws.Mode() == workspace.ModeBackend {
		if !ws.Loaded() {
			if _, err := ws.RefreshDatasets(c.Request.Context()); err != nil {
				h.respondError(c, err)
				return
			}
		}
		if _, err := ws.Select(*req.DatasetID); err != nil {
			h.respondError(c, err)
			return
		}
	}

	state, err := ws.Ask(c.Request.Context(), req.Query)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// StateHandler returns the session's workspace
// @Summary      Workspace state
// @Description  Mode, datasets, active dataset, query state, upload form and recent history for the session
// @Tags         Query
// @Produce      json
// @Success      200  {object}  workspace.Snapshot
// @Router       /api/v1/state [get]
func (h *Handlers) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace(c).Snapshot())
}

// OverviewHandler returns the static overview
// @Summary      Static overview
// @Description  Metric cards, charts, insights and suggestions shown before any question is asked
// @Tags         Query
// @Produce      json
// @Success      200  {object}  overview.Overview
// @Router       /api/v1/overview [get]
func (h *Handlers) OverviewHandler(c *gin.Context) {
	c.JSON(http.StatusOK, overview.Default())
}

// HistoryHandler returns the session's recent questions
// @Summary      Session history
// @Tags         Query
// @Produce      json
// @Success      200  {object}  map[string][]models.HistoryEntry
// @Router       /api/v1/history [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.workspace(c).History()})
}

// BackendHistoryHandler relays the backend's query history
// @Summary      Backend query history
// @Tags         Query
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (default 10)"
// @Success      200    {object}  models.QueryHistoryResponse
// @Failure      503    {object}  map[string]string  "Demo mode"
// @Router       /api/v1/query/history [get]
func (h *Handlers) BackendHistoryHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	limit := h.historyLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	resp, err := h.backend.QueryHistory(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QueryDetailsHandler relays one stored query from the backend
// @Summary      Query details
// @Tags         Query
// @Produce      json
// @Param        id   path      int  true  "Query ID"
// @Success      200  {object}  models.QueryDetailsResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/query/{id} [get]
func (h *Handlers) QueryDetailsHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid query id")
		return
	}

	resp, err := h.backend.QueryDetails(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
