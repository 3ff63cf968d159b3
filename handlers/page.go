package handlers

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"insightiq/backend"
	"insightiq/config"
	"insightiq/overview"
	"insightiq/render"
	"insightiq/workspace"
)

//go:embed templates/*.html
var templatesFS embed.FS

func pageTemplate() *template.Template {
	funcs := template.FuncMap{
		"svg":     render.SVG,
		"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
		"table": func(v render.View) *render.Table {
			if t, ok := v.(render.Table); ok {
				return &t
			}
			return nil
		},
		"placeholder": func(v render.View) string {
			if p, ok := v.(render.Placeholder); ok {
				return p.Message
			}
			return ""
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

type pageData struct {
	AppName     string
	Tagline     string
	Demo        bool
	Snapshot    workspace.Snapshot
	Overview    overview.Overview
	Suggestions []string
	Flash       string
}

// IndexHandler renders the dashboard page
func (h *Handlers) IndexHandler(c *gin.Context) {
	ws := h.workspace(c)
	flash := c.Query("error")

	if ws.Mode() == workspace.ModeBackend && !ws.Loaded() {
		if _, err := ws.RefreshDatasets(c.Request.Context()); err != nil {
			h.logger.Warn("failed to load datasets", zap.String("session", ws.ID()), zap.Error(err))
			if flash == "" {
				flash = "Could not load datasets: " + err.Error()
			}
		}
	}

	c.HTML(http.StatusOK, "index.html", pageData{
		AppName:     config.AppName,
		Tagline:     config.Tagline,
		Demo:        ws.Mode() == workspace.ModeDemo,
		Snapshot:    ws.Snapshot(),
		Overview:    overview.Default(),
		Suggestions: config.Suggestions,
		Flash:       flash,
	})
}

// redirectHome sends the browser back to the page. msg, when set, is shown as a banner.
func redirectHome(c *gin.Context, msg string) {
	target := "/"
	if msg != "" {
		target += "?error=" + url.QueryEscape(msg)
	}
	c.Redirect(http.StatusSeeOther, target)
}

// PostQueryHandler submits the search form.
func (h *Handlers) PostQueryHandler(c *gin.Context) {
	ws := h.workspace(c)
	if c.PostForm("reset") != "" {
		ws.Query.Reset()
		redirectHome(c, "")
		return
	}
	// errors are part of the query state and render inline
	_, _ = ws.Ask(c.Request.Context(), c.PostForm("query"))
	redirectHome(c, "")
}

// PostUploadHandler submits the upload form.
func (h *Handlers) PostUploadHandler(c *gin.Context) {
	ws := h.workspace(c)
	files, cleanup, err := h.formFiles(c)
	if err != nil {
		redirectHome(c, err.Error())
		return
	}
	defer cleanup()

	name, description := c.PostForm("dataset_name"), c.PostForm("description")
	if len(files) > 1 {
		_, _ = ws.DropFiles(c.Request.Context(), name, description, files)
	} else if len(files) == 1 {
		_, _ = ws.UploadFile(c.Request.Context(), name, description, files[0])
	} else {
		_, _ = ws.DropFiles(c.Request.Context(), name, description, nil)
	}
	redirectHome(c, "")
}

// PostSelectDatasetHandler makes the posted dataset active.
func (h *Handlers) PostSelectDatasetHandler(c *gin.Context) {
	id, err := backend.ParseID(c.PostForm("dataset_id"))
	if err != nil {
		redirectHome(c, "Invalid dataset id")
		return
	}
	if _, err := h.workspace(c).Select(id); err != nil {
		redirectHome(c, err.Error())
		return
	}
	redirectHome(c, "")
}

// PostDeleteDatasetHandler deletes a dataset from the backend.
func (h *Handlers) PostDeleteDatasetHandler(c *gin.Context) {
	id, err := backend.ParseID(c.Param("id"))
	if err != nil {
		redirectHome(c, "Invalid dataset id")
		return
	}
	if err := h.workspace(c).DeleteDataset(c.Request.Context(), id); err != nil {
		redirectHome(c, err.Error())
		return
	}
	redirectHome(c, "")
}

// PostExportHandler saves the current result and downloads it.
func (h *Handlers) PostExportHandler(c *gin.Context) {
	info, err := h.export(c, c.PostForm("format"))
	if err != nil {
		redirectHome(c, err.Error())
		return
	}
	path, err := h.exports.Path(info.Filename)
	if err != nil {
		redirectHome(c, err.Error())
		return
	}
	c.FileAttachment(path, info.Filename)
}

// formFiles opens every uploaded part under "file" or "files".
func (h *Handlers) formFiles(c *gin.Context) ([]workspace.File, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, func() {}, fmt.Errorf("file exceeds the %d byte upload limit", h.maxUpload)
		}
		return nil, func() {}, fmt.Errorf("invalid upload form: %w", err)
	}

	var (
		headers []*multipart.FileHeader
		opened  []multipart.File
		files   []workspace.File
	)
	headers = append(headers, form.File["file"]...)
	headers = append(headers, form.File["files"]...)

	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		files = append(files, workspace.File{
			Name:        fh.Filename,
			ContentType: strings.TrimSpace(fh.Header.Get("Content-Type")),
			Content:     f,
		})
	}
	return files, cleanup, nil
}
