package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"insightiq/models"
	"insightiq/service"
	"insightiq/workspace"
)

// export saves the session's current result in the given format.
func (h *Handlers) export(c *gin.Context, format string) (models.ExportFileInfo, error) {
	state := h.workspace(c).Query.State()
	if state.Status != workspace.StatusResult {
		return models.ExportFileInfo{}, service.ErrNoResult
	}
	info, err := h.exports.Save(state.Result, format)
	if err != nil {
		return models.ExportFileInfo{}, err
	}
	h.logger.Info("result exported",
		zap.String("session", c.GetString(sessionKey)),
		zap.String("file", info.Filename))
	return info, nil
}

// CreateExportHandler exports the current result
// @Summary      Export report
// @Description  Save the session's current query result as JSON, CSV or XLSX
// @Tags         Exports
// @Accept       json
// @Produce      json
// @Param        request  body      models.ExportRequest   false  "Format (default json)"
// @Success      200      {object}  models.ExportFileInfo
// @Failure      400      {object}  map[string]string  "No result or unsupported format"
// @Router       /api/v1/exports [post]
func (h *Handlers) CreateExportHandler(c *gin.Context) {
	var req models.ExportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
	}
	if req.Format == "" {
		req.Format = c.Query("format")
	}

	info, err := h.export(c, req.Format)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ListExportsHandler lists export files
// @Summary      List exports
// @Tags         Exports
// @Produce      json
// @Success      200  {object}  map[string][]models.ExportFileInfo
// @Router       /api/v1/exports [get]
func (h *Handlers) ListExportsHandler(c *gin.Context) {
	files, err := h.exports.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// GetExportHandler downloads or reads an export file
// @Summary      Get export
// @Description  Download the file, or read its contents as JSON with ?view=json
// @Tags         Exports
// @Produce      json
// @Param        filename  path      string  true   "Export file name"
// @Param        view      query     string  false  "json to read the contents"
// @Success      200       {object}  models.ExportFile
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/v1/exports/{filename} [get]
func (h *Handlers) GetExportHandler(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.exports.Path(filename)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if c.Query("view") == "json" {
		file, err := h.exports.Get(filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, file)
		return
	}
	c.FileAttachment(path, filename)
}
