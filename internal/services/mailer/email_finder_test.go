package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
)

func newTestFinder() *EmailFinder {
	cfg := common.NewDefaultConfig().PlacesAPI
	return NewEmailFinder(&cfg, arbor.NewLogger())
}

func TestFindEmail_ScrapesWebsite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>Reservations: bookings@trattoria.example</body></html>`)
	}))
	defer server.Close()

	email := newTestFinder().FindEmail(context.Background(), server.URL)
	assert.Equal(t, "bookings@trattoria.example", email)
}

func TestFindEmail_SkipsExcludedDomains(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `Contact owner@gmail.com or reserve@bistro.example`)
	}))
	defer server.Close()

	email := newTestFinder().FindEmail(context.Background(), server.URL)
	assert.Equal(t, "reserve@bistro.example", email)
}

func TestFindEmail_SkipsExcludedPrefixes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `noreply@bistro.example webmaster@bistro.example table@bistro.example`)
	}))
	defer server.Close()

	email := newTestFinder().FindEmail(context.Background(), server.URL)
	assert.Equal(t, "table@bistro.example", email)
}

func TestFindEmail_FallsBackToLikelyAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>No contact info here</body></html>`)
	}))
	defer server.Close()

	email := newTestFinder().FindEmail(context.Background(), server.URL)
	// Scrape found nothing, so the domain-derived guess is used
	assert.Equal(t, "info@"+common.ExtractDomain(server.URL), email)
}

func TestFindEmail_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	email := newTestFinder().FindEmail(context.Background(), server.URL)
	assert.Equal(t, "info@"+common.ExtractDomain(server.URL), email)
}

func TestUsableEmail_LengthCap(t *testing.T) {
	long := "a-very-long-local-part-that-keeps-going@some-domain.example"
	assert.False(t, usableEmail(long))
	assert.True(t, usableEmail("hi@bistro.example"))
}

func TestLikelyEmail_UnparseableWebsite(t *testing.T) {
	assert.Equal(t, "", likelyEmail("not a url"))
}
