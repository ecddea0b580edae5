package places

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/models"
)

// searchClient is the slice of the Places client the search service
// needs. Tests substitute a counting double.
type searchClient interface {
	Configured() bool
	NearbySearch(ctx context.Context, location string, radius int, placeType string) ([]PlaceResult, error)
	TextSearch(ctx context.Context, query string) ([]PlaceResult, error)
	Geocode(ctx context.Context, location string) (*LatLng, error)
	Details(ctx context.Context, placeID string) (*DetailsResult, error)
}

// EmailFinder discovers a contact email for a restaurant from its
// website. Best-effort; an empty string means nothing usable was found.
type EmailFinder interface {
	FindEmail(ctx context.Context, websiteURL string) string
}

// searchStrategy is one approach to finding restaurants for a location.
// Strategies run in a fixed order and the first one returning any
// results short-circuits the rest.
type searchStrategy struct {
	name    string
	attempt func(ctx context.Context, location string, radius int) ([]PlaceResult, error)
}

// Service finds restaurants near an event using the Google Places API
type Service struct {
	config      *common.PlacesAPIConfig
	logger      arbor.ILogger
	client      searchClient
	emailFinder EmailFinder
}

// NewService creates a restaurant search service. The email finder is
// optional; without it enrichment skips email discovery.
func NewService(config *common.PlacesAPIConfig, client *Client, emailFinder EmailFinder, logger arbor.ILogger) *Service {
	return &Service{
		config:      config,
		logger:      logger,
		client:      client,
		emailFinder: emailFinder,
	}
}

// newServiceWithClient allows tests to inject a search client double
func newServiceWithClient(config *common.PlacesAPIConfig, client searchClient, emailFinder EmailFinder, logger arbor.ILogger) *Service {
	return &Service{
		config:      config,
		logger:      logger,
		client:      client,
		emailFinder: emailFinder,
	}
}

// SearchRestaurants resolves the event's location and runs the search
// strategy cascade. The resolved location string is returned alongside
// the results so callers can report it. A missing API key or an event
// with no usable location yields an empty list, not an error; an empty
// slice with a nil error also means every strategy came up empty.
func (s *Service) SearchRestaurants(ctx context.Context, event *models.EventRecord, radius int) ([]models.RestaurantRecord, string, error) {
	if !s.client.Configured() {
		s.logger.Warn().Msg("Google Places API key is not configured (set GOOGLE_MAPS_API_KEY), skipping restaurant search")
		return []models.RestaurantRecord{}, "", nil
	}

	location, ok := ResolveLocation(event)
	if !ok {
		s.logger.Warn().Msg("No usable location in event data, skipping restaurant search")
		return []models.RestaurantRecord{}, "", nil
	}

	if radius <= 0 {
		radius = s.config.SearchRadius
	}

	s.logger.Info().
		Str("location", location).
		Int("radius", radius).
		Msg("Searching for restaurants")

	strategies := []searchStrategy{
		{name: "nearby_search", attempt: s.nearbyAttempt},
		{name: "text_search", attempt: s.textAttempt},
		{name: "geocode_nearby", attempt: s.geocodeAttempt},
	}

	var results []PlaceResult
	for _, strat := range strategies {
		found, err := strat.attempt(ctx, location, radius)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("strategy", strat.name).
				Str("location", location).
				Msg("Restaurant search strategy failed")
			continue
		}
		if len(found) > 0 {
			s.logger.Info().
				Str("strategy", strat.name).
				Int("results_count", len(found)).
				Msg("Restaurant search strategy succeeded")
			results = found
			break
		}
		s.logger.Debug().
			Str("strategy", strat.name).
			Msg("Restaurant search strategy returned no results")
	}

	if len(results) == 0 {
		s.logger.Warn().
			Str("location", location).
			Msg("No restaurants found with any search strategy")
		return []models.RestaurantRecord{}, location, nil
	}

	maxResults := s.config.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	restaurants := make([]models.RestaurantRecord, 0, len(results))
	for _, place := range results {
		record := models.RestaurantRecord{
			Name:       place.Name,
			PlaceID:    place.PlaceID,
			Address:    placeAddress(place),
			Rating:     place.Rating,
			PriceLevel: place.PriceLevel,
			Types:      place.Types,
		}

		// Detail enrichment is per-result and isolated: one failed
		// lookup never disturbs the rest of the list
		s.enrich(ctx, &record)

		restaurants = append(restaurants, record)
	}

	s.logger.Info().
		Int("restaurants", len(restaurants)).
		Str("location", location).
		Msg("Restaurant search complete")

	return restaurants, location, nil
}

// nearbyAttempt passes the location string straight to nearby search
func (s *Service) nearbyAttempt(ctx context.Context, location string, radius int) ([]PlaceResult, error) {
	return s.client.NearbySearch(ctx, location, radius, "restaurant")
}

// textAttempt falls back to a free-text query
func (s *Service) textAttempt(ctx context.Context, location string, _ int) ([]PlaceResult, error) {
	return s.client.TextSearch(ctx, "restaurants near "+location)
}

// geocodeAttempt resolves the location to coordinates first, then runs
// a nearby search on them
func (s *Service) geocodeAttempt(ctx context.Context, location string, radius int) ([]PlaceResult, error) {
	latLng, err := s.client.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}
	if latLng == nil {
		return nil, nil
	}

	coords := fmt.Sprintf("%f,%f", latLng.Lat, latLng.Lng)
	return s.client.NearbySearch(ctx, coords, radius, "restaurant")
}

// enrich fills detail fields for one restaurant
func (s *Service) enrich(ctx context.Context, record *models.RestaurantRecord) {
	if record.PlaceID == "" {
		return
	}

	details, err := s.client.Details(ctx, record.PlaceID)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("place_id", record.PlaceID).
			Str("name", record.Name).
			Msg("Restaurant details lookup failed")
		return
	}
	if details == nil {
		return
	}

	record.Phone = details.FormattedPhoneNumber
	record.Website = details.Website
	record.FullAddress = details.FormattedAddress
	if details.OpeningHours != nil {
		record.OpeningHours = details.OpeningHours.WeekdayText
	}

	if record.Website != "" && s.emailFinder != nil {
		record.Email = s.emailFinder.FindEmail(ctx, record.Website)
	}
}

// placeAddress prefers the nearby-search vicinity, falling back to the
// text-search formatted address
func placeAddress(place PlaceResult) string {
	if place.Vicinity != "" {
		return place.Vicinity
	}
	return place.FormattedAddress
}
