package models

// EventRecord holds everything known about a single event. Structured
// fields use pointers so absence is distinguishable from an empty value:
// nil means never determined, a pointer to "" means determined empty.
type EventRecord struct {
	URL string `json:"url,omitempty"`

	// Structured fields produced by the AI pass (or heuristics as fallback)
	Title        *string `json:"title,omitempty"`
	Date         *string `json:"date,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	VenueName    *string `json:"venue_name,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	ZipCode      *string `json:"zip_code,omitempty"`
	Building     *string `json:"building,omitempty"`
	Campus       *string `json:"campus,omitempty"`
	Landmarks    *string `json:"landmarks,omitempty"`
	FullLocation *string `json:"full_location,omitempty"`
	Description  *string `json:"description,omitempty"`
	EventType    *string `json:"event_type,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Website      *string `json:"website,omitempty"`
	ParkingInfo  *string `json:"parking_info,omitempty"`
	Transport    *string `json:"transportation,omitempty"`

	Agenda   []string `json:"agenda,omitempty"`
	Speakers []string `json:"speakers,omitempty"`

	// Heuristic-only fields from the pattern extraction pass
	Dates       []string `json:"dates,omitempty"`
	Times       []string `json:"times,omitempty"`
	Addresses   []string `json:"addresses,omitempty"`
	FullAddress *string  `json:"full_address,omitempty"`

	// Supplementary page content captured while exploring linked pages
	AgendaContent   *string `json:"agenda_content,omitempty"`
	LocationContent *string `json:"location_content,omitempty"`

	// Raw model output preserved when structured parsing fails
	AIResponse *string `json:"ai_response,omitempty"`
}

// Str returns a pointer to the given string. Convenience for building
// records with literal values.
func Str(s string) *string {
	return &s
}

// Deref returns the pointed-to string, or "" for nil
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
