package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
)

// staticStrategy fetches pages with a plain HTTP GET and a spoofed
// browser user agent. Works everywhere, but sees nothing rendered by
// JavaScript.
type staticStrategy struct {
	config *common.FetcherConfig
	logger arbor.ILogger
	client *http.Client
}

func newStaticStrategy(config *common.FetcherConfig, logger arbor.ILogger) *staticStrategy {
	return &staticStrategy{
		config: config,
		logger: logger,
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
	}
}

func (s *staticStrategy) Name() string {
	return SourceStatic
}

func (s *staticStrategy) Available() bool {
	return true
}

// Fetch retrieves the raw HTML and extracts its visible text. Pages
// shorter than the configured minimum are rejected as blocked or empty.
func (s *staticStrategy) Fetch(ctx context.Context, url string) (*interfaces.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	html := string(body)
	text, err := extractVisibleText(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	if len(text) < s.config.MinContentLength {
		return nil, fmt.Errorf("retrieved content is too short - possible blocking or empty page")
	}

	return &interfaces.PageContent{
		URL:    url,
		HTML:   html,
		Text:   text,
		Source: SourceStatic,
	}, nil
}
