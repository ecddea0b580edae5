package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// Service runs the heuristic pattern pass: a title from DOM selectors
// plus dates, times and addresses from ordered regex families. The
// output seeds the AI structuring pass and stands alone as a fallback
// when no model is available.
type Service struct {
	logger arbor.ILogger
}

func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// Extract builds an event record from fetched page content
func (s *Service) Extract(page *interfaces.PageContent) *models.EventRecord {
	event := &models.EventRecord{URL: page.URL}

	if title := s.extractTitle(page.HTML); title != "" {
		event.Title = models.Str(title)
	}

	event.Dates = firstFamilyMatches(page.Text, dateFamilies)
	event.Times = firstFamilyMatches(page.Text, timeFamilies)
	event.Addresses = firstFamilyMatches(page.Text, addressFamilies)

	// Promote first matches so downstream consumers have a single value
	// even when the AI pass never runs
	if len(event.Dates) > 0 {
		event.Date = models.Str(event.Dates[0])
	}
	if len(event.Times) > 0 {
		event.StartTime = models.Str(event.Times[0])
	}
	if len(event.Addresses) > 0 {
		event.Address = models.Str(event.Addresses[0])
	}

	s.logger.Debug().
		Str("url", page.URL).
		Str("title", models.Deref(event.Title)).
		Int("dates", len(event.Dates)).
		Int("times", len(event.Times)).
		Int("addresses", len(event.Addresses)).
		Msg("Pattern extraction complete")

	return event
}

// extractTitle probes the title selectors in order and returns the
// first non-empty trimmed text
func (s *Service) extractTitle(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to parse page for title extraction")
		return ""
	}

	for _, selector := range titleSelectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return ""
}
