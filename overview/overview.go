// Package overview holds the static dashboard shown before any query is asked, and the
// demo querier used when no backend is configured.
package overview

import (
	"insightiq/config"
	"insightiq/models"
	"insightiq/render"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

type Metric struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
}

type Chart struct {
	Title string      `json:"title"`
	Kind  render.Kind `json:"kind"`
	View  render.View `json:"view"`
}

func newChart(title, visualization string, rows []models.Row) Chart {
	v := render.BuildRows(visualization, rows)
	return Chart{Title: title, Kind: v.Kind(), View: v}
}

type Insight struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Overview struct {
	Metrics     []Metric  `json:"metrics"`
	Charts      []Chart   `json:"charts"`
	Insights    []Insight `json:"insights"`
	Suggestions []string  `json:"suggestions"`
}

var metrics = []Metric{
	{Title: "Total Revenue", Value: "$284,750", Change: "+12.5%", Trend: TrendUp},
	{Title: "Active Users", Value: "2,847", Change: "+8.2%", Trend: TrendUp},
	{Title: "Conversion Rate", Value: "4.2%", Change: "-0.3%", Trend: TrendDown},
	{Title: "Growth Rate", Value: "23.1%", Change: "+2.1%", Trend: TrendUp},
}

var insights = []Insight{
	{Title: "Top Performing Month", Text: "June generated $65,000 in revenue, 18% above target"},
	{Title: "User Growth", Text: "137% increase in active users since January"},
	{Title: "Best Channel", Text: "Organic search drives 35% of all traffic"},
}

func revenueRows() []models.Row {
	return []models.Row{
		models.NewRow("month", "Jan", "revenue", 45000, "target", 50000),
		models.NewRow("month", "Feb", "revenue", 52000, "target", 50000),
		models.NewRow("month", "Mar", "revenue", 48000, "target", 50000),
		models.NewRow("month", "Apr", "revenue", 58000, "target", 55000),
		models.NewRow("month", "May", "revenue", 62000, "target", 55000),
		models.NewRow("month", "Jun", "revenue", 65000, "target", 55000),
	}
}

func userGrowthRows() []models.Row {
	return []models.Row{
		models.NewRow("month", "Jan", "users", 1200),
		models.NewRow("month", "Feb", "users", 1580),
		models.NewRow("month", "Mar", "users", 1920),
		models.NewRow("month", "Apr", "users", 2150),
		models.NewRow("month", "May", "users", 2480),
		models.NewRow("month", "Jun", "users", 2847),
	}
}

func channelRows() []models.Row {
	return []models.Row{
		models.NewRow("name", "Organic Search", "value", 35),
		models.NewRow("name", "Social Media", "value", 25),
		models.NewRow("name", "Direct", "value", 20),
		models.NewRow("name", "Email", "value", 15),
		models.NewRow("name", "Paid Ads", "value", 5),
	}
}

// Default returns the static overview. Charts go through the same renderer as query
// results.
func Default() Overview {
	return Overview{
		Metrics: append([]Metric(nil), metrics...),
		Charts: []Chart{
			newChart("Revenue vs Target", models.VisualizationLine, revenueRows()),
			newChart("User Growth", models.VisualizationBar, userGrowthRows()),
			newChart("Traffic Channels", models.VisualizationPie, channelRows()),
		},
		Insights:    append([]Insight(nil), insights...),
		Suggestions: append([]string(nil), config.Suggestions...),
	}
}
