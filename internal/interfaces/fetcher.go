package interfaces

import (
	"context"

	"github.com/ternarybob/reperio/internal/models"
)

// PageContent is the outcome of fetching one page
type PageContent struct {
	URL    string // Normalized URL that was fetched
	HTML   string // Raw page HTML (empty for text-only strategies)
	Text   string // Visible page text, whitespace-normalized
	Source string // Name of the strategy that produced the content
}

// FetchService retrieves event page content, choosing a strategy
// appropriate to the runtime environment
type FetchService interface {
	// Fetch retrieves the page at the given (already normalized) URL.
	// Strategies are tried in order; the first success wins.
	Fetch(ctx context.Context, url string) (*PageContent, error)

	// Explore follows agenda/schedule and location/venue links from the
	// fetched page and returns their captured content keyed by topic.
	Explore(ctx context.Context, page *PageContent) map[string]string
}

// ExtractService runs the heuristic pattern pass over fetched page content
type ExtractService interface {
	Extract(page *PageContent) *models.EventRecord
}
