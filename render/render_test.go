package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightiq/models"
)

func decodeResponse(t *testing.T, visualization, data string) *models.QueryResponse {
	t.Helper()
	resp := &models.QueryResponse{Success: true, VisualizationType: visualization}
	require.NoError(t, json.Unmarshal([]byte(data), &resp.Data))
	return resp
}

func TestBuild_EmptyRowsAlwaysPlaceholder(t *testing.T) {
	for _, vt := range []string{"line", "bar", "pie", "table", "scatter", ""} {
		v := Build(&models.QueryResponse{VisualizationType: vt})
		require.IsType(t, Placeholder{}, v, vt)
		assert.Equal(t, NoDataMessage, v.(Placeholder).Message)
	}
	assert.Equal(t, KindPlaceholder, Build(nil).Kind())
}

func TestBuild_Pie(t *testing.T) {
	resp := decodeResponse(t, "pie", `[{"name":"A","value":10},{"name":"B","value":20}]`)

	v := Build(resp)
	require.IsType(t, PieChart{}, v)
	pie := v.(PieChart)
	require.Len(t, pie.Segments, 2)
	assert.Equal(t, Segment{Label: "A", Value: 10, Color: Palette[0]}, pie.Segments[0])
	assert.Equal(t, Segment{Label: "B", Value: 20, Color: Palette[1]}, pie.Segments[1])
}

func TestBuild_PieColorsCycle(t *testing.T) {
	rows := make([]models.Row, 7)
	for i := range rows {
		rows[i] = models.NewRow("name", string(rune('A'+i)), "value", i)
	}
	pie := BuildRows("pie", rows).(PieChart)
	assert.Equal(t, Palette[0], pie.Segments[5].Color)
	assert.Equal(t, Palette[1], pie.Segments[6].Color)
}

func TestBuild_PieWithOneColumnFallsBackToTable(t *testing.T) {
	resp := decodeResponse(t, "pie", `[{"name":"A"}]`)
	assert.Equal(t, KindTable, Build(resp).Kind())
}

func TestBuild_Bar(t *testing.T) {
	resp := decodeResponse(t, "bar", `[{"month":"Jan","revenue":45000,"target":50000}]`)

	v := Build(resp)
	require.IsType(t, SeriesChart{}, v)
	chart := v.(SeriesChart)
	assert.Equal(t, KindBar, chart.Kind())
	assert.Equal(t, "month", chart.Axis)
	assert.Equal(t, []string{"Jan"}, chart.Categories)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "revenue", chart.Series[0].Name)
	assert.Equal(t, []interface{}{45000.0}, chart.Series[0].Values)
	assert.Equal(t, Palette[0], chart.Series[0].Color)
	assert.Equal(t, "target", chart.Series[1].Name)
	assert.Equal(t, []interface{}{50000.0}, chart.Series[1].Values)
	assert.Equal(t, Palette[1], chart.Series[1].Color)
}

func TestBuild_LineFollowsKeyOrder(t *testing.T) {
	resp := decodeResponse(t, "line", `[
		{"month":"Jan","churn":2.8,"retention":97.2},
		{"month":"Feb","churn":3.1,"retention":96.9}]`)

	chart := Build(resp).(SeriesChart)
	assert.Equal(t, KindLine, chart.Type)
	assert.Equal(t, []string{"Jan", "Feb"}, chart.Categories)
	assert.Equal(t, "churn", chart.Series[0].Name)
	assert.Equal(t, "retention", chart.Series[1].Name)
	assert.Equal(t, []interface{}{97.2, 96.9}, chart.Series[1].Values)
}

func TestBuild_SeriesColorsCycleAfterFive(t *testing.T) {
	row := models.NewRow("k", "x", "s1", 1, "s2", 2, "s3", 3, "s4", 4, "s5", 5, "s6", 6)
	chart := BuildRows("line", []models.Row{row}).(SeriesChart)
	require.Len(t, chart.Series, 6)
	assert.Equal(t, Palette[0], chart.Series[5].Color)
}

func TestBuild_TableFallback(t *testing.T) {
	resp := decodeResponse(t, "metrics", `[
		{"metric":"Active Users","value":2847},
		{"metric":"Conversion Rate","value":4.2},
		{"metric":"Revenue","value":1234567.5},
		{"metric":"Note","value":null}]`)

	v := Build(resp)
	require.IsType(t, Table{}, v)
	table := v.(Table)
	assert.Equal(t, []string{"metric", "value"}, table.Columns)
	assert.Equal(t, []string{"Active Users", "2,847"}, table.Rows[0])
	assert.Equal(t, []string{"Conversion Rate", "4.2"}, table.Rows[1])
	assert.Equal(t, []string{"Revenue", "1,234,567.5"}, table.Rows[2])
	assert.Equal(t, []string{"Note", ""}, table.Rows[3])
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "2,847", FormatValue(2847))
	assert.Equal(t, "2,847", FormatValue(2847.0))
	assert.Equal(t, "-45,000", FormatValue(int64(-45000)))
	assert.Equal(t, "12345", FormatValue("12345"))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "2,847", FormatValue(json.Number("2847")))
	assert.Equal(t, "4.2", FormatValue(4.2))
	assert.Equal(t, "1,234.568", FormatValue(1234.5678))
	assert.Equal(t, "33.333", FormatValue(33.333333333333336))
	assert.Equal(t, "0.3", FormatValue(0.1+0.2))
	assert.Equal(t, "0", FormatValue(-0.0001))
}

func TestSVG(t *testing.T) {
	bar := BuildRows("bar", []models.Row{models.NewRow("month", "Jan", "revenue", 45000, "target", 50000)})
	out := string(SVG(bar))
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Equal(t, 2, strings.Count(out, "<rect"))
	assert.Contains(t, out, Palette[1])

	line := BuildRows("line", []models.Row{models.NewRow("m", "Jan", "u", 1), models.NewRow("m", "Feb", "u", 2)})
	assert.Contains(t, string(SVG(line)), "<polyline")

	pie := BuildRows("pie", []models.Row{models.NewRow("n", "<A>", "v", 1), models.NewRow("n", "B", "v", 3)})
	pieOut := string(SVG(pie))
	assert.Equal(t, 2, strings.Count(pieOut, "<path"))
	assert.Contains(t, pieOut, "&lt;A&gt;")

	assert.Empty(t, SVG(Table{}))
	assert.Empty(t, SVG(Placeholder{}))
}

func TestSVG_NegativeBarsGrowDownFromZero(t *testing.T) {
	bar := BuildRows("bar", []models.Row{
		models.NewRow("region", "North", "profit", 300),
		models.NewRow("region", "South", "profit", -100),
	})
	out := string(SVG(bar))

	assert.Equal(t, 2, strings.Count(out, "<rect"))
	assert.NotContains(t, out, `height="-`)
	// 300 and -100 split the 240px plot 180/60 around the zero line at y=220
	assert.Contains(t, out, `y="40.0" width="224.0" height="180.0"`)
	assert.Contains(t, out, `y="220.0" width="224.0" height="60.0"`)
	assert.Contains(t, out, "profit: -100<")
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	view := BuildRows("bar", []models.Row{models.NewRow("month", "Jan", "revenue", 45000)})
	require.NoError(t, Text(&buf, view))
	out := buf.String()
	assert.Contains(t, out, "[bar chart]")
	assert.Contains(t, out, "45,000")

	buf.Reset()
	require.NoError(t, Text(&buf, Placeholder{Message: NoDataMessage}))
	assert.Equal(t, NoDataMessage+"\n", buf.String())

	buf.Reset()
	pie := BuildRows("pie", []models.Row{models.NewRow("n", "A", "v", 1), models.NewRow("n", "B", "v", 3)})
	require.NoError(t, Text(&buf, pie))
	assert.Contains(t, buf.String(), "75.0%")
}
