package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"insightiq/models"
)

// Observer receives one call per backend request. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveBackend(operation string, d time.Duration, err error)
}

// Client talks to the analysis backend. Every method issues exactly one HTTP call;
// nothing is retried or cached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	observer   Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds each call. The default is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// ProcessQuery submits a natural-language question. The returned rows have been checked
// for homogeneity.
func (c *Client) ProcessQuery(ctx context.Context, req models.QueryRequest) (*models.QueryResponse, error) {
	var resp models.QueryResponse
	if err := c.doJSON(ctx, "query", http.MethodPost, "/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) QueryHistory(ctx context.Context, limit int) (*models.QueryHistoryResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	var resp models.QueryHistoryResponse
	path := "/query/history?limit=" + strconv.Itoa(limit)
	if err := c.doJSON(ctx, "query_history", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) QueryDetails(ctx context.Context, queryID int64) (*models.QueryDetailsResponse, error) {
	var resp models.QueryDetailsResponse
	if err := c.doJSON(ctx, "query_details", http.MethodGet, fmt.Sprintf("/query/%d", queryID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadCSV streams file to the backend as the "file" part of a multipart form.
func (c *Client) UploadCSV(ctx context.Context, file io.Reader, filename, datasetName, description string) (*models.UploadResponse, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.WriteField("dataset_name", datasetName); err != nil {
		return nil, err
	}
	if err := w.WriteField("description", description); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var resp models.UploadResponse
	if err := c.do(ctx, "upload_csv", http.MethodPost, "/upload/csv", body, w.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDatasets(ctx context.Context) (*models.DatasetList, error) {
	var resp models.DatasetList
	if err := c.doJSON(ctx, "list_datasets", http.MethodGet, "/datasets", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetDataset(ctx context.Context, id int64) (*models.DatasetDetail, error) {
	var resp models.DatasetDetail
	if err := c.doJSON(ctx, "get_dataset", http.MethodGet, fmt.Sprintf("/datasets/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteDataset(ctx context.Context, id int64) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, "delete_dataset", http.MethodDelete, fmt.Sprintf("/datasets/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDashboards(ctx context.Context) (*models.DashboardList, error) {
	var resp models.DashboardList
	if err := c.doJSON(ctx, "list_dashboards", http.MethodGet, "/dashboards", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetDashboard(ctx context.Context, id int64) (*models.DashboardResponse, error) {
	var resp models.DashboardResponse
	if err := c.doJSON(ctx, "get_dashboard", http.MethodGet, fmt.Sprintf("/dashboards/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateDashboard(ctx context.Context, name, description string, isPublic bool) (*models.DashboardResponse, error) {
	body, contentType, err := formBody(map[string]string{
		"name":        name,
		"description": description,
		"is_public":   strconv.FormatBool(isPublic),
	})
	if err != nil {
		return nil, err
	}

	var resp models.DashboardResponse
	if err := c.do(ctx, "create_dashboard", http.MethodPost, "/dashboards", body, contentType, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddWidget attaches a widget to a dashboard. Zero width or height take the
// backend's defaults of 6 and 4.
func (c *Client) AddWidget(ctx context.Context, dashboardID int64, req models.WidgetRequest) (*models.WidgetResponse, error) {
	if req.Width == 0 {
		req.Width = 6
	}
	if req.Height == 0 {
		req.Height = 4
	}
	cfg := req.Config
	if cfg == nil {
		cfg = map[string]interface{}{}
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode widget config: %w", err)
	}

	body, contentType, err := formBody(map[string]string{
		"title":       req.Title,
		"widget_type": req.WidgetType,
		"query_id":    strconv.FormatInt(req.QueryID, 10),
		"position_x":  strconv.Itoa(req.PositionX),
		"position_y":  strconv.Itoa(req.PositionY),
		"width":       strconv.Itoa(req.Width),
		"height":      strconv.Itoa(req.Height),
		"config":      string(cfgJSON),
	})
	if err != nil {
		return nil, err
	}

	var resp models.WidgetResponse
	path := fmt.Sprintf("/dashboards/%d/widgets", dashboardID)
	if err := c.do(ctx, "add_widget", http.MethodPost, path, body, contentType, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks that the backend answers the dataset listing.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListDatasets(ctx)
	return err
}

func formBody(fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, op, method, path, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackend(op, time.Since(start), err)
		}
		if err != nil {
			c.logger.Warn("backend request failed", zap.String("operation", op), zap.String("path", path), zap.Error(err))
		} else {
			c.logger.Debug("backend request", zap.String("operation", op), zap.String("path", path), zap.Duration("duration", time.Since(start)))
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: detailOf(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	if v, ok := out.(validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
		}
	}
	return nil
}

// validator is implemented by response bodies that carry checks beyond decoding.
type validator interface {
	Validate() error
}

// detailOf pulls the "detail" message out of an error body. Structured details
// (validation error lists) are passed through as their JSON text.
func detailOf(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	if string(body.Detail) == "null" {
		return ""
	}
	return string(body.Detail)
}

// ParseID parses a numeric path parameter.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
