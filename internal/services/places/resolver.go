package places

import (
	"strings"

	"github.com/ternarybob/reperio/internal/models"
)

// minLocationLength filters out fragments too short to geocode
// ("NY" alone, stray punctuation)
const minLocationLength = 3

// ResolveLocation picks the best searchable location string from an
// event record. Candidates are evaluated in strict priority order, most
// specific first; the first one longer than minLocationLength wins.
func ResolveLocation(event *models.EventRecord) (string, bool) {
	if event == nil {
		return "", false
	}

	candidates := []string{
		// AI-extracted comprehensive location (highest priority)
		models.Deref(event.FullLocation),
		// Complete address combinations
		buildFullAddress(event),
		// Individual address components
		models.Deref(event.Address),
		models.Deref(event.FullAddress),
		// Venue with location context
		buildVenueLocation(event),
		models.Deref(event.VenueName),
		// City/state combinations
		buildCityState(event),
		models.Deref(event.City),
		// Fallback to any address-like data
		firstAddress(event),
		models.Deref(event.Campus),
		models.Deref(event.Building),
	}

	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) > minLocationLength {
			return trimmed, true
		}
	}

	return "", false
}

// buildFullAddress assembles a complete address from components. The
// country is appended only when it is not the USA; domestic addresses
// geocode better without it.
func buildFullAddress(event *models.EventRecord) string {
	var components []string

	if addr := models.Deref(event.Address); addr != "" {
		components = append(components, addr)
	}
	if city := models.Deref(event.City); city != "" {
		components = append(components, city)
	}
	if state := models.Deref(event.State); state != "" {
		components = append(components, state)
	}
	if zip := models.Deref(event.ZipCode); zip != "" {
		components = append(components, zip)
	}
	if country := models.Deref(event.Country); country != "" && strings.ToUpper(country) != "USA" {
		components = append(components, country)
	}

	return strings.Join(components, ", ")
}

// buildVenueLocation pairs the venue name with city/state context
func buildVenueLocation(event *models.EventRecord) string {
	venue := models.Deref(event.VenueName)
	if venue == "" {
		return ""
	}

	var parts []string
	if city := models.Deref(event.City); city != "" {
		parts = append(parts, city)
	}
	if state := models.Deref(event.State); state != "" {
		parts = append(parts, state)
	}

	if len(parts) > 0 {
		return venue + ", " + strings.Join(parts, ", ")
	}
	return venue
}

// buildCityState joins city and state when both are present
func buildCityState(event *models.EventRecord) string {
	city := models.Deref(event.City)
	state := models.Deref(event.State)

	if city != "" && state != "" {
		return city + ", " + state
	}
	return city
}

func firstAddress(event *models.EventRecord) string {
	if len(event.Addresses) > 0 {
		return event.Addresses[0]
	}
	return ""
}
