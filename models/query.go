package models

import "fmt"

// Visualization types the renderer knows about. The backend may send other values;
// those render as a table.
const (
	VisualizationLine  = "line"
	VisualizationBar   = "bar"
	VisualizationPie   = "pie"
	VisualizationTable = "table"
)

type QueryResponse struct {
	Success           bool    `json:"success"`
	Query             string  `json:"query"`
	SQL               string  `json:"sql,omitempty"`
	Data              []Row   `json:"data"`
	QueryType         string  `json:"query_type"`
	VisualizationType string  `json:"visualization_type"`
	Explanation       string  `json:"explanation,omitempty"`
	ExecutionTime     int64   `json:"execution_time"`
	Confidence        float64 `json:"confidence"`
	Error             string  `json:"error,omitempty"`
}

// Columns returns the key order of the first row.
func (r *QueryResponse) Columns() []string {
	if r == nil || len(r.Data) == 0 {
		return nil
	}
	return r.Data[0].Keys()
}

// Validate checks that every row exposes the first row's keys in the same order.
func (r *QueryResponse) Validate() error {
	if r == nil {
		return fmt.Errorf("empty response")
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0, 1]", r.Confidence)
	}
	cols := r.Columns()
	for i, row := range r.Data[min(1, len(r.Data)):] {
		keys := row.Keys()
		if len(keys) != len(cols) {
			return fmt.Errorf("row %d has %d columns, expected %d", i+1, len(keys), len(cols))
		}
		for j, k := range keys {
			if k != cols[j] {
				return fmt.Errorf("row %d column %d is %q, expected %q", i+1, j, k, cols[j])
			}
		}
	}
	return nil
}
