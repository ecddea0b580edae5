package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// jsonObjectPattern grabs the outermost brace-delimited block from a
// model response, tolerating prose before and after the JSON
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Structurer runs the AI structuring pass: page text plus the heuristic
// record go in, a fully structured event record comes out. Every failure
// mode degrades to the heuristic record rather than an error.
type Structurer struct {
	service interfaces.LLMService
	logger  arbor.ILogger
}

// NewStructurer creates a structurer over the given LLM service. A nil
// service is valid and disables the AI pass entirely.
func NewStructurer(service interfaces.LLMService, logger arbor.ILogger) *Structurer {
	return &Structurer{
		service: service,
		logger:  logger,
	}
}

// Structure enriches the heuristic record using the language model.
// The call never fails: with no service, a provider error, or an
// unparseable response the heuristic record comes back (carrying the
// raw model output when there was one).
func (s *Structurer) Structure(ctx context.Context, pageText string, partial *models.EventRecord) *models.EventRecord {
	if s.service == nil {
		s.logger.Debug().Msg("No LLM service available - keeping heuristic extraction")
		return partial
	}

	prompt := s.buildPrompt(pageText, partial)

	response, err := s.service.Chat(ctx, []interfaces.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.service.ProviderName()).
			Msg("AI structuring failed - keeping heuristic extraction")
		return partial
	}

	jsonText := jsonObjectPattern.FindString(response)
	if jsonText == "" {
		s.logger.Warn().
			Int("response_length", len(response)).
			Msg("No JSON object in AI response - keeping heuristic extraction")
		fallback := *partial
		fallback.AIResponse = models.Str(response)
		return &fallback
	}

	var structured models.EventRecord
	if err := json.Unmarshal([]byte(jsonText), &structured); err != nil {
		s.logger.Warn().
			Err(err).
			Msg("AI response JSON did not parse - keeping heuristic extraction")
		fallback := *partial
		fallback.AIResponse = models.Str(response)
		return &fallback
	}

	// The structured record replaces the heuristic one; page identity
	// and explored content are not part of the model's output and carry over
	structured.URL = partial.URL
	structured.AgendaContent = partial.AgendaContent
	structured.LocationContent = partial.LocationContent

	s.logger.Info().
		Str("provider", s.service.ProviderName()).
		Str("title", models.Deref(structured.Title)).
		Str("full_location", models.Deref(structured.FullLocation)).
		Msg("AI structuring complete")

	return &structured
}

// buildPrompt assembles the extraction prompt: page text, the heuristic
// record as JSON, and the required output schema
func (s *Structurer) buildPrompt(pageText string, partial *models.EventRecord) string {
	partialJSON, err := json.MarshalIndent(partial, "", "  ")
	if err != nil {
		partialJSON = []byte("{}")
	}

	var b strings.Builder
	b.WriteString("You are an expert event information extraction system. Analyze the following web page content and extract ALL available event information with high accuracy.\n\n")
	b.WriteString("CRITICAL: Focus especially on LOCATION information as this is essential for finding nearby restaurants.\n\n")
	fmt.Fprintf(&b, "Web page content:\n%s\n\n", pageText)
	fmt.Fprintf(&b, "Previously extracted basic info:\n%s\n\n", partialJSON)
	b.WriteString(`EXTRACT AND STRUCTURE the following information:

1. EVENT DETAILS:
   - Title/Name of the event
   - Date(s) in YYYY-MM-DD format
   - Start time and end time in HH:MM format
   - Duration or multiple days
   - Event type (conference, festival, workshop, etc.)
   - Description/summary

2. LOCATION INFORMATION (CRITICAL - extract every location detail you can find):
   - Venue/facility name
   - Complete street address (number, street, city, state, zip)
   - Building name or room number
   - City and state/province
   - Country
   - Nearby landmarks or cross streets
   - Campus or complex name

3. ADDITIONAL DETAILS:
   - Agenda/schedule items with times
   - Speakers or performers
   - Registration/ticket information
   - Contact details
   - Parking information
   - Public transportation access

SEARCH STRATEGY:
- Look for addresses in various formats (123 Main St, 123 Main Street, etc.)
- Check for venue names (Convention Center, Hotel, University, etc.)
- Find city/state combinations
- Look for zip codes and postal codes
- Search for campus or building names
- Check contact sections for addresses
- Look in footer information
- Check "location", "venue", "address", "directions" sections

OUTPUT FORMAT:
Return a valid JSON object with this exact structure:
{
    "title": "Complete event title",
    "date": "YYYY-MM-DD or date range",
    "start_time": "HH:MM",
    "end_time": "HH:MM",
    "venue_name": "Full venue/facility name",
    "address": "Complete street address",
    "city": "City name",
    "state": "State/Province",
    "country": "Country",
    "zip_code": "Postal code",
    "building": "Building or room details",
    "campus": "Campus or complex name",
    "landmarks": "Nearby landmarks or cross streets",
    "full_location": "Most complete location string for mapping",
    "agenda": ["List of agenda items with times"],
    "description": "Event description",
    "event_type": "Type of event",
    "speakers": ["Speaker names"],
    "contact_email": "Contact email",
    "contact_phone": "Contact phone",
    "website": "Event website",
    "parking_info": "Parking details",
    "transportation": "Public transport info"
}

IMPORTANT RULES:
1. If a field cannot be determined, use null (not empty string)
2. For location, be as specific as possible - include all address components
3. Create a "full_location" field with the most complete location string for mapping
4. Look carefully for ANY location information, even if scattered across the page
5. Return valid JSON only - no extra text or explanations
6. If multiple events are listed, focus on the main/featured event
`)

	return b.String()
}
