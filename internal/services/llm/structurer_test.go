package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/interfaces"
	"github.com/ternarybob/reperio/internal/models"
)

// mockLLMService returns a scripted response or error
type mockLLMService struct {
	response string
	err      error
	calls    int
}

func (m *mockLLMService) Chat(_ context.Context, _ []interfaces.Message) (string, error) {
	m.calls++
	return m.response, m.err
}

func (m *mockLLMService) ProviderName() string { return "mock" }
func (m *mockLLMService) Close() error         { return nil }

func heuristicRecord() *models.EventRecord {
	return &models.EventRecord{
		URL:   "https://example.org/event",
		Title: models.Str("Annual Tech Conference"),
		Dates: []string{"March 15, 2024"},
	}
}

func TestStructure_NilServiceKeepsHeuristics(t *testing.T) {
	s := NewStructurer(nil, arbor.NewLogger())

	partial := heuristicRecord()
	result := s.Structure(context.Background(), "page text", partial)

	assert.Same(t, partial, result)
}

func TestStructure_JSONEmbeddedInProse(t *testing.T) {
	mock := &mockLLMService{
		response: `Here is the extracted information:
{"title": "Annual Tech Conference 2024", "city": "San Francisco", "state": "CA", "full_location": "Moscone Center, San Francisco, CA"}
Let me know if you need anything else.`,
	}
	s := NewStructurer(mock, arbor.NewLogger())

	result := s.Structure(context.Background(), "page text", heuristicRecord())

	require.NotNil(t, result)
	assert.Equal(t, "Annual Tech Conference 2024", models.Deref(result.Title))
	assert.Equal(t, "San Francisco", models.Deref(result.City))
	assert.Equal(t, "Moscone Center, San Francisco, CA", models.Deref(result.FullLocation))
	// Page identity carries over even though the model output replaces the record
	assert.Equal(t, "https://example.org/event", result.URL)
	assert.Nil(t, result.AIResponse)
}

func TestStructure_NullFieldsStayAbsent(t *testing.T) {
	mock := &mockLLMService{
		response: `{"title": "Concert", "venue_name": null, "city": null}`,
	}
	s := NewStructurer(mock, arbor.NewLogger())

	result := s.Structure(context.Background(), "page text", heuristicRecord())

	assert.Equal(t, "Concert", models.Deref(result.Title))
	assert.Nil(t, result.VenueName)
	assert.Nil(t, result.City)
}

func TestStructure_NoJSONKeepsHeuristicsWithRawResponse(t *testing.T) {
	mock := &mockLLMService{
		response: "I could not find any event information on this page.",
	}
	s := NewStructurer(mock, arbor.NewLogger())

	partial := heuristicRecord()
	result := s.Structure(context.Background(), "page text", partial)

	assert.Equal(t, "Annual Tech Conference", models.Deref(result.Title))
	assert.Equal(t, []string{"March 15, 2024"}, result.Dates)
	require.NotNil(t, result.AIResponse)
	assert.Equal(t, mock.response, *result.AIResponse)
	// The input record is not mutated
	assert.Nil(t, partial.AIResponse)
}

func TestStructure_InvalidJSONKeepsHeuristicsWithRawResponse(t *testing.T) {
	mock := &mockLLMService{
		response: `{"title": "Broken", "city": }`,
	}
	s := NewStructurer(mock, arbor.NewLogger())

	result := s.Structure(context.Background(), "page text", heuristicRecord())

	assert.Equal(t, "Annual Tech Conference", models.Deref(result.Title))
	require.NotNil(t, result.AIResponse)
	assert.Equal(t, mock.response, *result.AIResponse)
}

func TestStructure_ChatErrorKeepsHeuristics(t *testing.T) {
	mock := &mockLLMService{err: fmt.Errorf("rate limited")}
	s := NewStructurer(mock, arbor.NewLogger())

	partial := heuristicRecord()
	result := s.Structure(context.Background(), "page text", partial)

	assert.Same(t, partial, result)
	assert.Nil(t, result.AIResponse)
	assert.Equal(t, 1, mock.calls)
}

func TestStructure_ExploredContentCarriesOver(t *testing.T) {
	mock := &mockLLMService{response: `{"title": "Summit"}`}
	s := NewStructurer(mock, arbor.NewLogger())

	partial := heuristicRecord()
	partial.AgendaContent = models.Str("# Agenda\n9:00 Keynote")

	result := s.Structure(context.Background(), "page text", partial)

	assert.Equal(t, "Summit", models.Deref(result.Title))
	require.NotNil(t, result.AgendaContent)
	assert.Equal(t, "# Agenda\n9:00 Keynote", *result.AgendaContent)
}

func TestBuildPrompt_IncludesPageAndPartial(t *testing.T) {
	s := NewStructurer(&mockLLMService{}, arbor.NewLogger())

	prompt := s.buildPrompt("Some page text about an event", heuristicRecord())

	assert.Contains(t, prompt, "Some page text about an event")
	assert.Contains(t, prompt, "Annual Tech Conference")
	assert.Contains(t, prompt, `"full_location"`)
	assert.Contains(t, prompt, "Return valid JSON only")
}
