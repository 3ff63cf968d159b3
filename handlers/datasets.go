package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insightiq/backend"
	"insightiq/models"
	"insightiq/workspace"
)

// ListDatasetsHandler lists datasets and refreshes the session's copy
// @Summary      List datasets
// @Tags         Datasets
// @Produce      json
// @Success      200  {object}  models.DatasetList
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/datasets [get]
func (h *Handlers) ListDatasetsHandler(c *gin.Context) {
	list, err := h.workspace(c).RefreshDatasets(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if list == nil {
		list = []models.Dataset{}
	}
	c.JSON(http.StatusOK, models.DatasetList{Success: true, Datasets: list})
}

// GetDatasetHandler relays one dataset with its schema and sample rows
// @Summary      Get dataset
// @Tags         Datasets
// @Produce      json
// @Param        id   path      int  true  "Dataset ID"
// @Success      200  {object}  models.DatasetDetail
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/datasets/{id} [get]
func (h *Handlers) GetDatasetHandler(c *gin.Context) {
	if h.backend == nil {
		h.respondError(c, errBackendUnavailable)
		return
	}
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid dataset id")
		return
	}

	resp, err := h.backend.GetDataset(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteDatasetHandler deletes a dataset
// @Summary      Delete dataset
// @Tags         Datasets
// @Produce      json
// @Param        id   path      int  true  "Dataset ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/datasets/{id} [delete]
func (h *Handlers) DeleteDatasetHandler(c *gin.Context) {
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid dataset id")
		return
	}

	ws := h.workspace(c)
	if ws.Mode() == workspace.ModeDemo {
		h.respondError(c, errBackendUnavailable)
		return
	}
	if err := ws.DeleteDataset(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Dataset deleted"})
}

// SelectDatasetHandler makes a dataset active for the session
// @Summary      Select dataset
// @Tags         Datasets
// @Produce      json
// @Param        id   path      int  true  "Dataset ID"
// @Success      200  {object}  models.DatasetDetail
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/datasets/{id}/select [post]
func (h *Handlers) SelectDatasetHandler(c *gin.Context) {
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid dataset id")
		return
	}

	ws := h.workspace(c)
	if ws.Mode() == workspace.ModeBackend && !ws.Loaded() {
		if _, err := ws.RefreshDatasets(c.Request.Context()); err != nil {
			h.respondError(c, err)
			return
		}
	}
	ds, err := ws.Select(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DatasetDetail{Success: true, Dataset: ds})
}
