package fetcher

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
)

// Service retrieves event pages using an ordered list of fetch
// strategies. In an unrestricted environment the headless browser is
// tried first with plain HTTP as fallback; restricted hosts only ever
// use plain HTTP.
type Service struct {
	config     *common.FetcherConfig
	logger     arbor.ILogger
	strategies []strategy
	explorer   *explorer
}

// NewService creates a fetch service with strategies ordered for the
// classified environment
func NewService(config *common.FetcherConfig, classifier common.Classifier, logger arbor.ILogger) *Service {
	env := classifier.Classify()

	var strategies []strategy
	browser := newBrowserStrategy(config, logger)
	static := newStaticStrategy(config, logger)

	if env == common.EnvUnrestricted && browser.Available() {
		strategies = []strategy{browser, static}
	} else {
		strategies = []strategy{static}
	}

	logger.Info().
		Str("environment", string(env)).
		Int("strategies", len(strategies)).
		Msg("Fetch service initialized")

	return &Service{
		config:     config,
		logger:     logger,
		strategies: strategies,
		explorer:   newExplorer(config, logger),
	}
}

// newServiceWithStrategies allows tests to inject fetch strategies
func newServiceWithStrategies(config *common.FetcherConfig, logger arbor.ILogger, strategies ...strategy) *Service {
	return &Service{
		config:     config,
		logger:     logger,
		strategies: strategies,
		explorer:   newExplorer(config, logger),
	}
}

// Fetch retrieves the page at the given normalized URL. Each strategy
// is attempted in order; failures are logged and the next strategy
// takes over. The error of the last strategy is returned when all fail.
func (s *Service) Fetch(ctx context.Context, url string) (*interfaces.PageContent, error) {
	var lastErr error

	for _, strat := range s.strategies {
		if !strat.Available() {
			s.logger.Debug().
				Str("strategy", strat.Name()).
				Msg("Fetch strategy unavailable, skipping")
			continue
		}

		page, err := strat.Fetch(ctx, url)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("strategy", strat.Name()).
				Str("url", url).
				Msg("Fetch strategy failed")
			lastErr = err
			continue
		}

		s.logger.Info().
			Str("strategy", strat.Name()).
			Str("url", url).
			Int("content_length", len(page.Text)).
			Msg("Page fetched")
		return page, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no fetch strategy available")
	}
	return nil, fmt.Errorf("all fetch strategies failed for %s: %w", url, lastErr)
}

// Explore follows agenda and location links from the fetched page and
// returns captured content keyed by topic ("agenda_content",
// "location_content"). Only browser-fetched pages are explored; the
// static path returns without sub-page fetches. Exploration is
// best-effort; failures yield an empty map, never an error.
func (s *Service) Explore(ctx context.Context, page *interfaces.PageContent) map[string]string {
	if !s.config.ExploreLinks || page == nil || page.Source != SourceBrowser {
		return map[string]string{}
	}
	return s.explorer.explore(ctx, page, s.fetchForExplore)
}

// fetchForExplore retrieves a linked page without the full strategy
// cascade noise; exploration reuses the same strategies but tolerates
// failure silently.
func (s *Service) fetchForExplore(ctx context.Context, url string) (*interfaces.PageContent, error) {
	for _, strat := range s.strategies {
		if !strat.Available() {
			continue
		}
		if page, err := strat.Fetch(ctx, url); err == nil {
			return page, nil
		}
	}
	return nil, fmt.Errorf("exploration fetch failed for %s", url)
}
