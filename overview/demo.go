package overview

import (
	"context"
	"strings"
	"time"

	"insightiq/models"
)

// Demo answers queries from canned data by keyword. It stands in for the backend when
// none is configured.
type Demo struct {
	delay time.Duration
}

func NewDemo(delay time.Duration) *Demo {
	return &Demo{delay: delay}
}

func (d *Demo) ProcessQuery(ctx context.Context, req models.QueryRequest) (*models.QueryResponse, error) {
	start := time.Now()
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	resp := mockResponse(req.Query)
	resp.ExecutionTime = time.Since(start).Milliseconds()
	return resp, nil
}

func mockResponse(query string) *models.QueryResponse {
	lower := strings.ToLower(query)
	resp := &models.QueryResponse{
		Success:    true,
		Query:      query,
		Confidence: 0.8,
	}

	switch {
	case strings.Contains(lower, "churn") || strings.Contains(lower, "retention"):
		resp.QueryType = "churn_analysis"
		resp.VisualizationType = models.VisualizationLine
		resp.Explanation = "Your monthly churn rate is 3.2%, which is within industry standards."
		resp.Data = []models.Row{
			models.NewRow("month", "Jan", "churn", 2.8, "retention", 97.2),
			models.NewRow("month", "Feb", "churn", 3.1, "retention", 96.9),
			models.NewRow("month", "Mar", "churn", 3.2, "retention", 96.8),
			models.NewRow("month", "Apr", "churn", 2.9, "retention", 97.1),
			models.NewRow("month", "May", "churn", 3.4, "retention", 96.6),
			models.NewRow("month", "Jun", "churn", 3.2, "retention", 96.8),
		}
	case strings.Contains(lower, "revenue") || strings.Contains(lower, "sales"):
		resp.QueryType = "revenue_analysis"
		resp.VisualizationType = models.VisualizationBar
		resp.Explanation = "Revenue has grown 23% compared to last quarter, with strong performance in Q2."
		resp.Data = revenueRows()
	default:
		resp.QueryType = "general_metrics"
		resp.VisualizationType = models.VisualizationTable
		resp.Explanation = "Here's a comprehensive overview of your key business metrics."
		resp.Data = []models.Row{
			models.NewRow("metric", "Active Users", "value", 2847),
			models.NewRow("metric", "Conversion Rate", "value", 4.2),
			models.NewRow("metric", "Avg Order Value", "value", 127),
			models.NewRow("metric", "Customer Satisfaction", "value", 8.6),
		}
	}
	return resp
}
