package search

// Filters is the structured output of parsing a free-text event
// search query.
type Filters struct {
	Categories []string `json:"categories"`
	Campuses   []string `json:"campuses"`
	DateRange  string   `json:"dateRange"`
	Keywords   []string `json:"keywords"`
}

type ParseQueryBody struct {
	Query string `json:"query"`
}
