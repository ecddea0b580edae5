package agent

import (
	"context"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
	"github.com/ternarybob/reperio/internal/services/fetcher"
	"github.com/ternarybob/reperio/internal/services/llm"
	"github.com/ternarybob/reperio/internal/services/mailer"
)

// maxDrafts caps how many restaurants get a reservation email per run
const maxDrafts = 5

// Service orchestrates the full pipeline: fetch the event page, run
// the heuristic and AI extraction passes, find nearby restaurants, and
// draft reservation emails.
type Service struct {
	config     *common.Config
	logger     arbor.ILogger
	fetcher    interfaces.FetchService
	extractor  interfaces.ExtractService
	structurer *llm.Structurer
	places     interfaces.PlacesService
	mailer     *mailer.Service
}

// NewService wires the pipeline stages together
func NewService(
	config *common.Config,
	fetchService interfaces.FetchService,
	extractService interfaces.ExtractService,
	structurer *llm.Structurer,
	placesService interfaces.PlacesService,
	mailerService *mailer.Service,
	logger arbor.ILogger,
) *Service {
	return &Service{
		config:     config,
		logger:     logger,
		fetcher:    fetchService,
		extractor:  extractService,
		structurer: structurer,
		places:     placesService,
		mailer:     mailerService,
	}
}

// ExtractEvent fetches an event page and runs both extraction passes.
// Fetch failures are reported in the result's Error field rather than
// as a Go error so callers always get a result with an ID.
func (s *Service) ExtractEvent(ctx context.Context, rawURL string) *models.ExtractionResult {
	result := &models.ExtractionResult{
		ID: uuid.New().String(),
	}

	normalized, err := common.NormalizeURL(rawURL)
	if err != nil {
		result.URL = rawURL
		result.Error = err.Error()
		return result
	}
	result.URL = normalized

	s.logger.Info().
		Str("id", result.ID).
		Str("url", normalized).
		Msg("Extracting event information")

	page, err := s.fetcher.Fetch(ctx, normalized)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Source = page.Source

	event := s.extractor.Extract(page)

	// Linked agenda and location pages often hold the address the
	// landing page hides behind a tab
	explored := s.fetcher.Explore(ctx, page)
	if content, ok := explored[fetcher.KeyAgendaContent]; ok {
		event.AgendaContent = models.Str(content)
	}
	if content, ok := explored[fetcher.KeyLocationContent]; ok {
		event.LocationContent = models.Str(content)
	}

	pageText := page.Text
	if event.AgendaContent != nil {
		pageText += "\n\n" + *event.AgendaContent
	}
	if event.LocationContent != nil {
		pageText += "\n\n" + *event.LocationContent
	}

	result.Event = s.structurer.Structure(ctx, pageText, event)

	s.logger.Info().
		Str("id", result.ID).
		Str("title", models.Deref(result.Event.Title)).
		Str("source", result.Source).
		Msg("Event extraction complete")

	return result
}

// ProcessEventURL runs the complete workflow: extract the event, find
// nearby restaurants, and draft reservation emails for the top results.
func (s *Service) ProcessEventURL(ctx context.Context, rawURL string, partySize int) *models.PipelineResult {
	result := &models.PipelineResult{}

	extraction := s.ExtractEvent(ctx, rawURL)
	result.Extraction = extraction

	if extraction.Error != "" {
		result.Error = "failed to extract event info: " + extraction.Error
		return result
	}

	restaurants, location, err := s.places.SearchRestaurants(ctx, extraction.Event, s.config.PlacesAPI.SearchRadius)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("url", extraction.URL).
			Msg("Restaurant search failed")
	}
	result.Location = location
	result.Restaurants = restaurants

	if partySize <= 0 {
		partySize = s.config.Mailer.PartySize
	}

	for i := range restaurants {
		if i >= maxDrafts {
			break
		}
		draft := s.mailer.DraftBookingEmail(ctx, extraction.Event, &restaurants[i], partySize)
		result.Drafts = append(result.Drafts, draft)
	}

	result.Summary = models.PipelineSummary{
		EventTitle:       orUnknown(models.Deref(extraction.Event.Title)),
		EventDate:        orTBD(models.Deref(extraction.Event.Date)),
		Location:         location,
		RestaurantsFound: len(restaurants),
		EmailsDrafted:    len(result.Drafts),
	}

	s.logger.Info().
		Str("event_title", result.Summary.EventTitle).
		Int("restaurants_found", result.Summary.RestaurantsFound).
		Int("emails_drafted", result.Summary.EmailsDrafted).
		Msg("Event pipeline complete")

	return result
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown Event"
	}
	return s
}

func orTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}
