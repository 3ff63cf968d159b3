// Package render turns a query response into one of a closed set of views:
// a placeholder, a line or bar chart, a pie chart, or a table.
package render

import (
	"fmt"
	"strconv"

	"insightiq/models"
)

// Palette is cycled by series position (line, bar) or row position (pie).
var Palette = []string{"#3B82F6", "#10B981", "#F59E0B", "#8B5CF6", "#EF4444"}

const NoDataMessage = "No data available for this query"

type Kind string

const (
	KindPlaceholder Kind = "placeholder"
	KindLine        Kind = "line"
	KindBar         Kind = "bar"
	KindPie         Kind = "pie"
	KindTable       Kind = "table"
)

// View is implemented only by the types in this package.
type View interface {
	Kind() Kind
	isView()
}

type Placeholder struct {
	Message string `json:"message"`
}

// SeriesChart is a line or bar chart. Categories holds the first column's values in row
// order; each series holds one value per category.
type SeriesChart struct {
	Type       Kind     `json:"type"`
	Axis       string   `json:"axis"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
}

type Series struct {
	Name   string        `json:"name"`
	Color  string        `json:"color"`
	Values []interface{} `json:"values"`
}

type PieChart struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (Placeholder) Kind() Kind   { return KindPlaceholder }
func (c SeriesChart) Kind() Kind { return c.Type }
func (PieChart) Kind() Kind      { return KindPie }
func (Table) Kind() Kind         { return KindTable }

func (Placeholder) isView() {}
func (SeriesChart) isView() {}
func (PieChart) isView()    {}
func (Table) isView()       {}

// Color returns the palette entry for position i.
func Color(i int) string {
	return Palette[i%len(Palette)]
}

// Build selects the view for resp. Rows are expected to be homogeneous; the backend
// client rejects responses that are not.
func Build(resp *models.QueryResponse) View {
	if resp == nil || len(resp.Data) == 0 {
		return Placeholder{Message: NoDataMessage}
	}
	return BuildRows(resp.VisualizationType, resp.Data)
}

// BuildRows is Build for rows that did not come from a query response.
func BuildRows(visualization string, rows []models.Row) View {
	if len(rows) == 0 {
		return Placeholder{Message: NoDataMessage}
	}
	columns := rows[0].Keys()

	switch visualization {
	case models.VisualizationLine, models.VisualizationBar:
		return buildSeries(Kind(visualization), columns, rows)
	case models.VisualizationPie:
		if len(columns) >= 2 {
			return buildPie(rows)
		}
	}
	return buildTable(columns, rows)
}

func buildSeries(kind Kind, columns []string, rows []models.Row) SeriesChart {
	chart := SeriesChart{
		Type:       kind,
		Axis:       columns[0],
		Categories: make([]string, len(rows)),
		Series:     make([]Series, 0, len(columns)-1),
	}
	for i, row := range rows {
		chart.Categories[i] = Stringify(row.At(0))
	}
	for i, name := range columns[1:] {
		s := Series{Name: name, Color: Color(i), Values: make([]interface{}, len(rows))}
		for j, row := range rows {
			s.Values[j], _ = row.Get(name)
		}
		chart.Series = append(chart.Series, s)
	}
	return chart
}

func buildPie(rows []models.Row) PieChart {
	pie := PieChart{Segments: make([]Segment, len(rows))}
	for i, row := range rows {
		v, _ := Number(row.At(1))
		pie.Segments[i] = Segment{
			Label: Stringify(row.At(0)),
			Value: v,
			Color: Color(i),
		}
	}
	return pie
}

func buildTable(columns []string, rows []models.Row) Table {
	t := Table{Columns: columns, Rows: make([][]string, len(rows))}
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			v, _ := row.Get(col)
			cells[j] = FormatValue(v)
		}
		t.Rows[i] = cells
	}
	return t
}

// Number reports v as a float64 when it is numeric.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Stringify renders v literally, with no number grouping.
func Stringify(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
