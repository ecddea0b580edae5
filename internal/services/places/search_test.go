package places

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/models"
)

// fakeSearchClient counts calls per endpoint and returns scripted results
type fakeSearchClient struct {
	unconfigured bool

	nearbyCalls  int
	textCalls    int
	geocodeCalls int
	detailCalls  int

	nearbyResults []PlaceResult
	nearbySeq     [][]PlaceResult // per-call scripting; overrides nearbyResults while non-empty
	nearbyErr     error
	textResults   []PlaceResult
	textErr       error
	geocodeResult *LatLng
	geocodeErr    error
	details       *DetailsResult
	detailsErr    error
}

func (f *fakeSearchClient) Configured() bool { return !f.unconfigured }

func (f *fakeSearchClient) NearbySearch(_ context.Context, _ string, _ int, _ string) ([]PlaceResult, error) {
	f.nearbyCalls++
	if len(f.nearbySeq) > 0 {
		next := f.nearbySeq[0]
		f.nearbySeq = f.nearbySeq[1:]
		return next, f.nearbyErr
	}
	return f.nearbyResults, f.nearbyErr
}

func (f *fakeSearchClient) TextSearch(_ context.Context, _ string) ([]PlaceResult, error) {
	f.textCalls++
	return f.textResults, f.textErr
}

func (f *fakeSearchClient) Geocode(_ context.Context, _ string) (*LatLng, error) {
	f.geocodeCalls++
	return f.geocodeResult, f.geocodeErr
}

func (f *fakeSearchClient) Details(_ context.Context, _ string) (*DetailsResult, error) {
	f.detailCalls++
	return f.details, f.detailsErr
}

func testPlacesConfig() *common.PlacesAPIConfig {
	cfg := common.NewDefaultConfig().PlacesAPI
	cfg.APIKey = "test-key"
	return &cfg
}

func testEvent() *models.EventRecord {
	return &models.EventRecord{
		FullLocation: models.Str("747 Howard St, San Francisco, CA"),
	}
}

func makePlaces(n int) []PlaceResult {
	places := make([]PlaceResult, n)
	for i := range places {
		places[i] = PlaceResult{
			Name:     fmt.Sprintf("Restaurant %d", i),
			PlaceID:  fmt.Sprintf("place-%d", i),
			Vicinity: "Somewhere nearby",
		}
	}
	return places
}

func TestSearchRestaurants_NearbyShortCircuits(t *testing.T) {
	client := &fakeSearchClient{
		nearbyResults: makePlaces(3),
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, location, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	assert.Equal(t, "747 Howard St, San Francisco, CA", location)
	assert.Len(t, restaurants, 3)
	assert.Equal(t, 1, client.nearbyCalls)
	assert.Equal(t, 0, client.textCalls)
	assert.Equal(t, 0, client.geocodeCalls)
}

func TestSearchRestaurants_FallsBackToTextSearch(t *testing.T) {
	client := &fakeSearchClient{
		nearbyErr:   fmt.Errorf("API error: INVALID_REQUEST - bad location"),
		textResults: makePlaces(2),
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, _, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	assert.Len(t, restaurants, 2)
	assert.Equal(t, 1, client.nearbyCalls)
	assert.Equal(t, 1, client.textCalls)
	assert.Equal(t, 0, client.geocodeCalls)
}

func TestSearchRestaurants_GeocodeFallback(t *testing.T) {
	// First nearby call returns nothing, text search returns nothing,
	// geocoding succeeds, and the coordinate-based nearby call delivers
	client := &fakeSearchClient{
		nearbySeq:     [][]PlaceResult{nil, makePlaces(1)},
		geocodeResult: &LatLng{Lat: 37.78, Lng: -122.4},
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, _, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	assert.Len(t, restaurants, 1)
	assert.Equal(t, 2, client.nearbyCalls)
	assert.Equal(t, 1, client.textCalls)
	assert.Equal(t, 1, client.geocodeCalls)
}

func TestSearchRestaurants_AllStrategiesEmpty(t *testing.T) {
	client := &fakeSearchClient{
		geocodeResult: &LatLng{Lat: 37.78, Lng: -122.4},
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, location, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	assert.Empty(t, restaurants)
	assert.NotEmpty(t, location)
	assert.Equal(t, 2, client.nearbyCalls) // direct + geocoded
	assert.Equal(t, 1, client.textCalls)
	assert.Equal(t, 1, client.geocodeCalls)
}

func TestSearchRestaurants_ResultsCapped(t *testing.T) {
	client := &fakeSearchClient{
		nearbyResults: makePlaces(15),
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, _, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	assert.Len(t, restaurants, 10)
	assert.Equal(t, 10, client.detailCalls)
}

func TestSearchRestaurants_DetailFailureIsolated(t *testing.T) {
	client := &fakeSearchClient{
		nearbyResults: makePlaces(3),
		detailsErr:    fmt.Errorf("details unavailable"),
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, _, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	require.Len(t, restaurants, 3)
	for _, r := range restaurants {
		assert.Empty(t, r.Phone)
		assert.Empty(t, r.Website)
	}
}

func TestSearchRestaurants_DetailEnrichment(t *testing.T) {
	client := &fakeSearchClient{
		nearbyResults: makePlaces(1),
		details: &DetailsResult{
			FormattedPhoneNumber: "(415) 555-0100",
			Website:              "https://example.org",
			FormattedAddress:     "747 Howard St, San Francisco, CA 94103",
			OpeningHours: &OpeningHours{
				WeekdayText: []string{"Monday: 11:00 AM – 10:00 PM"},
			},
		},
	}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, _, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "(415) 555-0100", restaurants[0].Phone)
	assert.Equal(t, "https://example.org", restaurants[0].Website)
	assert.Equal(t, "747 Howard St, San Francisco, CA 94103", restaurants[0].FullAddress)
	assert.Equal(t, []string{"Monday: 11:00 AM – 10:00 PM"}, restaurants[0].OpeningHours)
}

func TestSearchRestaurants_NoLocation(t *testing.T) {
	client := &fakeSearchClient{}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, location, err := svc.SearchRestaurants(context.Background(), &models.EventRecord{}, 2000)
	require.NoError(t, err)
	assert.Empty(t, restaurants)
	assert.Empty(t, location)
	assert.Equal(t, 0, client.nearbyCalls)
}

func TestSearchRestaurants_NoAPIKey(t *testing.T) {
	client := &fakeSearchClient{unconfigured: true}
	svc := newServiceWithClient(testPlacesConfig(), client, nil, arbor.NewLogger())

	restaurants, location, err := svc.SearchRestaurants(context.Background(), testEvent(), 2000)
	require.NoError(t, err)
	assert.Empty(t, restaurants)
	assert.Empty(t, location)
	assert.Equal(t, 0, client.nearbyCalls)
	assert.Equal(t, 0, client.textCalls)
	assert.Equal(t, 0, client.geocodeCalls)
}
