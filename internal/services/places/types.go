package places

// PlacesTextSearchResponse represents the Google Places Text Search API response
type PlacesTextSearchResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	Results          []PlaceResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// PlacesNearbySearchResponse represents the Google Places Nearby Search API response
type PlacesNearbySearchResponse struct {
	HTMLAttributions []string      `json:"html_attributions"`
	Results          []PlaceResult `json:"results"`
	Status           string        `json:"status"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	NextPageToken    string        `json:"next_page_token,omitempty"`
}

// GeocodeResponse represents the Google Geocoding API response
type GeocodeResponse struct {
	Results      []GeocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// GeocodeResult represents a single geocoding result
type GeocodeResult struct {
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Geometry         *Geometry `json:"geometry,omitempty"`
	PlaceID          string    `json:"place_id,omitempty"`
}

// PlaceDetailsResponse represents the Google Place Details API response
type PlaceDetailsResponse struct {
	Result       *DetailsResult `json:"result,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// DetailsResult holds the detail fields requested for a place
type DetailsResult struct {
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Website              string        `json:"website,omitempty"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
	URL                  string        `json:"url,omitempty"`
}

// PlaceResult represents a single place result from Google Places API
type PlaceResult struct {
	BusinessStatus   string        `json:"business_status,omitempty"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	Geometry         *Geometry     `json:"geometry,omitempty"`
	Name             string        `json:"name"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	PlaceID          string        `json:"place_id"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Rating           *float64      `json:"rating,omitempty"`
	Reference        string        `json:"reference,omitempty"`
	Types            []string      `json:"types,omitempty"`
	UserRatingsTotal int           `json:"user_ratings_total,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
}

// Geometry represents the geometry information of a place
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
	Viewport *Bounds `json:"viewport,omitempty"`
}

// LatLng represents a geographic coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a geographic bounding box
type Bounds struct {
	Northeast *LatLng `json:"northeast,omitempty"`
	Southwest *LatLng `json:"southwest,omitempty"`
}

// OpeningHours represents the opening hours of a place
type OpeningHours struct {
	OpenNow     bool     `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}
