package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/reperio/internal/models"
)

func TestResolveLocation_FullLocationWins(t *testing.T) {
	event := &models.EventRecord{
		FullLocation: models.Str("Moscone Center, 747 Howard St, San Francisco, CA 94103"),
		Address:      models.Str("747 Howard St"),
		City:         models.Str("San Francisco"),
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	assert.Equal(t, "Moscone Center, 747 Howard St, San Francisco, CA 94103", location)
}

func TestResolveLocation_SynthesizedFullAddress(t *testing.T) {
	event := &models.EventRecord{
		Address: models.Str("123 Main St"),
		City:    models.Str("San Francisco"),
		State:   models.Str("CA"),
		ZipCode: models.Str("94102"),
		Country: models.Str("USA"),
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	// USA is dropped from synthesized addresses
	assert.Equal(t, "123 Main St, San Francisco, CA, 94102", location)
}

func TestResolveLocation_ForeignCountryAppended(t *testing.T) {
	event := &models.EventRecord{
		Address: models.Str("10 Downing Street"),
		City:    models.Str("London"),
		Country: models.Str("UK"),
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	assert.Equal(t, "10 Downing Street, London, UK", location)
}

func TestResolveLocation_VenueWithCityState(t *testing.T) {
	event := &models.EventRecord{
		VenueName: models.Str("Convention Center"),
		City:      models.Str("Austin"),
		State:     models.Str("TX"),
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	// The synthesized address (city, state) outranks the bare venue,
	// but venue-with-context outranks city/state alone
	assert.Equal(t, "Austin, TX", location)
}

func TestResolveLocation_VenueOutranksCity(t *testing.T) {
	event := &models.EventRecord{
		VenueName: models.Str("Convention Center"),
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	assert.Equal(t, "Convention Center", location)
}

func TestResolveLocation_HeuristicAddressFallback(t *testing.T) {
	event := &models.EventRecord{
		Addresses: []string{"456 Oak Avenue", "789 Pine Road"},
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	assert.Equal(t, "456 Oak Avenue", location)
}

func TestResolveLocation_ShortCandidatesSkipped(t *testing.T) {
	event := &models.EventRecord{
		FullLocation: models.Str("NY"), // too short to geocode
		City:         models.Str("New York"),
	}

	location, ok := ResolveLocation(event)
	assert.True(t, ok)
	assert.Equal(t, "New York", location)
}

func TestResolveLocation_NothingUsable(t *testing.T) {
	event := &models.EventRecord{
		City:  models.Str("LA"),
		State: models.Str(""),
	}

	// "LA" alone is 2 chars; "LA," combos don't apply without state
	_, ok := ResolveLocation(event)
	assert.False(t, ok)
}

func TestResolveLocation_NilEvent(t *testing.T) {
	_, ok := ResolveLocation(nil)
	assert.False(t, ok)
}
