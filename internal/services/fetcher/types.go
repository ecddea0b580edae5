package fetcher

import (
	"context"

	"github.com/ternarybob/reperio/internal/interfaces"
)

// strategy is one way of retrieving a page. Strategies are tried in
// order; the first success wins and its name is recorded on the result.
type strategy interface {
	// Name identifies the strategy in logs and results
	Name() string

	// Available reports whether the strategy can run on this host
	Available() bool

	// Fetch retrieves the page at the given normalized URL
	Fetch(ctx context.Context, url string) (*interfaces.PageContent, error)
}

// Fetch strategy names recorded on PageContent.Source
const (
	SourceBrowser = "browser"
	SourceStatic  = "static"
)
