package models

// RestaurantRecord represents a restaurant candidate near an event venue
type RestaurantRecord struct {
	Name       string   `json:"name"`
	PlaceID    string   `json:"place_id"`
	Address    string   `json:"address,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Types      []string `json:"types,omitempty"`

	// Detail fields filled by per-result enrichment; empty when the
	// details lookup failed or returned nothing
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	FullAddress  string   `json:"full_address,omitempty"`
	OpeningHours []string `json:"opening_hours,omitempty"`
	Email        string   `json:"email,omitempty"`
}
