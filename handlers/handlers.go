package handlers

import (
	"context"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"insightiq/models"
	"insightiq/service"
	"insightiq/workspace"
)

// @title           InsightIQ Dashboard API
// @version         1.0
// @description     Ask natural-language questions about uploaded CSV datasets and get charts, tables and explanations back.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:9090
// @BasePath  /

// @schemes   http https

// Backend is the analytics backend as seen by the HTTP layer.
type Backend interface {
	workspace.Backend
	QueryHistory(ctx context.Context, limit int) (*models.QueryHistoryResponse, error)
	QueryDetails(ctx context.Context, queryID int64) (*models.QueryDetailsResponse, error)
	GetDataset(ctx context.Context, id int64) (*models.DatasetDetail, error)
	ListDashboards(ctx context.Context) (*models.DashboardList, error)
	GetDashboard(ctx context.Context, id int64) (*models.DashboardResponse, error)
	CreateDashboard(ctx context.Context, name, description string, isPublic bool) (*models.DashboardResponse, error)
	AddWidget(ctx context.Context, dashboardID int64, req models.WidgetRequest) (*models.WidgetResponse, error)
	Ping(ctx context.Context) error
}

type Deps struct {
	Registry *workspace.Registry
	// Backend is nil in demo mode.
	Backend       Backend
	Exports       *service.ExportStorage
	Logger        *zap.Logger
	MaxUploadSize int64
	HistoryLimit  int
}

type Handlers struct {
	registry     *workspace.Registry
	backend      Backend
	exports      *service.ExportStorage
	logger       *zap.Logger
	maxUpload    int64
	historyLimit int
	page         *template.Template
}

func New(d Deps) *Handlers {
	h := &Handlers{
		registry:     d.Registry,
		backend:      d.Backend,
		exports:      d.Exports,
		logger:       d.Logger,
		maxUpload:    d.MaxUploadSize,
		historyLimit: d.HistoryLimit,
		page:         pageTemplate(),
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.maxUpload <= 0 {
		h.maxUpload = 50 << 20
	}
	if h.historyLimit <= 0 {
		h.historyLimit = 10
	}
	return h
}

// Register mounts the dashboard page, its form posts and the JSON API on r.
func (h *Handlers) Register(r *gin.Engine) {
	r.SetHTMLTemplate(h.page)
	r.Use(h.SessionMiddleware())

	r.GET("/health", h.HealthHandler)

	r.GET("/", h.IndexHandler)
	r.POST("/query", h.PostQueryHandler)
	r.POST("/upload", h.PostUploadHandler)
	r.POST("/datasets/select", h.PostSelectDatasetHandler)
	r.POST("/datasets/:id/delete", h.PostDeleteDatasetHandler)
	r.POST("/results/export", h.PostExportHandler)

	api := r.Group("/api/v1")
	api.POST("/query", h.QueryHandler)
	api.GET("/state", h.StateHandler)
	api.GET("/overview", h.OverviewHandler)
	api.GET("/history", h.HistoryHandler)
	api.GET("/query/history", h.BackendHistoryHandler)
	api.GET("/query/:id", h.QueryDetailsHandler)

	api.POST("/upload/csv", h.UploadCSVHandler)
	api.GET("/datasets", h.ListDatasetsHandler)
	api.GET("/datasets/:id", h.GetDatasetHandler)
	api.DELETE("/datasets/:id", h.DeleteDatasetHandler)
	api.POST("/datasets/:id/select", h.SelectDatasetHandler)

	api.GET("/dashboards", h.ListDashboardsHandler)
	api.GET("/dashboards/:id", h.GetDashboardHandler)
	api.POST("/dashboards", h.CreateDashboardHandler)
	api.POST("/dashboards/:id/widgets", h.AddWidgetHandler)

	api.POST("/exports", h.CreateExportHandler)
	api.GET("/exports", h.ListExportsHandler)
	api.GET("/exports/:filename", h.GetExportHandler)
}
