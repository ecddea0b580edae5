package interfaces

import (
	"context"

	"github.com/ternarybob/reperio/internal/models"
)

// PlacesService finds restaurants near an event location
type PlacesService interface {
	// SearchRestaurants resolves the event's location and runs the
	// search strategy cascade. A missing API key, an event with no
	// usable location, and an exhausted cascade all yield an empty
	// slice with a nil error.
	SearchRestaurants(ctx context.Context, event *models.EventRecord, radius int) ([]models.RestaurantRecord, string, error)
}
