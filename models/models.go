package models

import "encoding/json"

type Dataset struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Schema      json.RawMessage `json:"schema,omitempty" swaggertype:"object"`
	SampleData  json.RawMessage `json:"sample_data,omitempty" swaggertype:"object"`
	CreatedAt   string          `json:"created_at"`
}

type QueryRequest struct {
	Query     string `json:"query" binding:"required"`
	DatasetID *int64 `json:"dataset_id,omitempty"`
}

type UploadResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Dataset Dataset `json:"dataset"`
}

type DatasetList struct {
	Success  bool      `json:"success"`
	Datasets []Dataset `json:"datasets"`
}

type DatasetDetail struct {
	Success bool    `json:"success"`
	Dataset Dataset `json:"dataset"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Dashboard and widget records are owned by the backend; the dashboard only relays them.
type Dashboard struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	IsPublic     bool              `json:"is_public"`
	LayoutConfig json.RawMessage   `json:"layout_config,omitempty" swaggertype:"object"`
	Widgets      []DashboardWidget `json:"widgets,omitempty"`
	CreatedAt    string            `json:"created_at,omitempty"`
}

type DashboardWidget struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	WidgetType string          `json:"widget_type"`
	QueryID    int64           `json:"query_id,omitempty"`
	PositionX  int             `json:"position_x"`
	PositionY  int             `json:"position_y"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Config     json.RawMessage `json:"config,omitempty" swaggertype:"object"`
}

type DashboardList struct {
	Success    bool        `json:"success"`
	Dashboards []Dashboard `json:"dashboards"`
}

type DashboardResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Dashboard Dashboard `json:"dashboard"`
}

type WidgetResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Widget  DashboardWidget `json:"widget"`
}

// WidgetRequest is sent as a multipart form; Config is JSON-encoded into a single field.
type WidgetRequest struct {
	Title      string                 `json:"title"`
	WidgetType string                 `json:"widget_type"`
	QueryID    int64                  `json:"query_id"`
	PositionX  int                    `json:"position_x"`
	PositionY  int                    `json:"position_y"`
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Config     map[string]interface{} `json:"config,omitempty"`
}

type CreateDashboardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type QueryHistoryItem struct {
	ID                int64  `json:"id"`
	Query             string `json:"query"`
	QueryType         string `json:"query_type"`
	VisualizationType string `json:"visualization_type"`
	ExecutionTime     int64  `json:"execution_time"`
	CreatedAt         string `json:"created_at"`
	Status            string `json:"status"`
}

type QueryHistoryResponse struct {
	Success bool               `json:"success"`
	Queries []QueryHistoryItem `json:"queries"`
}

type QueryDetails struct {
	ID                   int64  `json:"id"`
	NaturalLanguageQuery string `json:"natural_language_query"`
	GeneratedSQL         string `json:"generated_sql,omitempty"`
	QueryType            string `json:"query_type"`
	ResultData           []Row  `json:"result_data,omitempty"`
	VisualizationType    string `json:"visualization_type"`
	ExecutionTime        int64  `json:"execution_time"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at"`
}

type QueryDetailsResponse struct {
	Success bool         `json:"success"`
	Query   QueryDetails `json:"query"`
}

// HistoryEntry is a query submitted from this dashboard, recorded locally per session.
type HistoryEntry struct {
	Query             string `json:"query"`
	DatasetID         *int64 `json:"dataset_id,omitempty"`
	VisualizationType string `json:"visualization_type,omitempty"`
	Status            string `json:"status"`
	Error             string `json:"error,omitempty"`
	Timestamp         string `json:"timestamp"`
}

type ExportFileInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
	Format   string `json:"format"`
}

type ExportFile struct {
	Filename          string          `json:"filename"`
	Query             string          `json:"query,omitempty"`
	VisualizationType string          `json:"visualization_type,omitempty"`
	Timestamp         string          `json:"timestamp"`
	Columns           []string        `json:"columns"`
	Rows              [][]interface{} `json:"rows"`
	RowCount          int             `json:"row_count"`
}

type ExportRequest struct {
	Format string `json:"format" example:"xlsx"` // "json", "csv" or "xlsx"
}
