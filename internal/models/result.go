package models

// ExtractionResult is the outcome of extracting one event page
type ExtractionResult struct {
	ID     string       `json:"id"`
	URL    string       `json:"url"`
	Source string       `json:"source,omitempty"` // fetch strategy that produced the page
	Event  *EventRecord `json:"event,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// DraftEmail is a reservation inquiry drafted for one restaurant
type DraftEmail struct {
	Restaurant string `json:"restaurant"`
	To         string `json:"to,omitempty"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Generated  bool   `json:"generated"` // true when drafted by the model, false for the template fallback
}

// PipelineSummary aggregates counts for the full event-to-booking run
type PipelineSummary struct {
	EventTitle       string `json:"event_title,omitempty"`
	EventDate        string `json:"event_date,omitempty"`
	Location         string `json:"location,omitempty"`
	RestaurantsFound int    `json:"restaurants_found"`
	EmailsDrafted    int    `json:"emails_drafted"`
}

// PipelineResult is the end-to-end output: extracted event, nearby
// restaurants, and drafted reservation emails
type PipelineResult struct {
	Extraction  *ExtractionResult  `json:"extraction"`
	Location    string             `json:"location,omitempty"`
	Restaurants []RestaurantRecord `json:"restaurants,omitempty"`
	Drafts      []DraftEmail       `json:"drafts,omitempty"`
	Summary     PipelineSummary    `json:"summary"`
	Error       string             `json:"error,omitempty"`
}
