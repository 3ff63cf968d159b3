package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"insightiq/workspace"
)

// UploadCSVHandler uploads a CSV file as a new dataset
// @Summary      Upload CSV
// @Description  Upload one CSV file ("file") or drop several ("files"; the first CSV is used). A successful upload becomes the active dataset.
// @Tags         Datasets
// @Accept       multipart/form-data
// @Produce      json
// @Param        dataset_name  formData  string  true   "Dataset name"
// @Param        description   formData  string  false  "Description"
// @Param        file          formData  file    true   "CSV file"
// @Success      200  {object}  workspace.UploadForm
// @Failure      400  {object}  map[string]string  "Validation error"
// @Failure      503  {object}  map[string]string  "Demo mode"
// @Router       /api/v1/upload/csv [post]
func (h *Handlers) UploadCSVHandler(c *gin.Context) {
	ws := h.workspace(c)
	if ws.Mode() == workspace.ModeDemo {
		h.respondError(c, workspace.ErrUploadUnavailable)
		return
	}

	files, cleanup, err := h.formFiles(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer cleanup()

	name, description := c.PostForm("dataset_name"), c.PostForm("description")
	var form workspace.UploadForm
	if len(files) == 1 {
		form, err = ws.UploadFile(c.Request.Context(), name, description, files[0])
	} else {
		form, err = ws.DropFiles(c.Request.Context(), name, description, files)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}
