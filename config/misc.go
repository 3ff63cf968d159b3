package config

// Suggestions are the example questions offered under the search bar.
var Suggestions = []string{
	"What's our churn rate this month?",
	"Show me revenue trends for Q2",
	"How many active users do we have?",
	"What's our customer satisfaction score?",
}

const (
	AppName = "InsightIQ"
	Tagline = "Ask questions about your business data in plain English and get instant, visual insights"
)
