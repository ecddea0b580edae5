package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL_AddsScheme(t *testing.T) {
	url, err := NormalizeURL("example.org/event")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/event", url)
}

func TestNormalizeURL_TrimsWhitespace(t *testing.T) {
	url, err := NormalizeURL("  https://example.org/event \n")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/event", url)
}

func TestNormalizeURL_KeepsHTTP(t *testing.T) {
	url, err := NormalizeURL("http://example.org")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org", url)
}

func TestNormalizeURL_Empty(t *testing.T) {
	_, err := NormalizeURL("   ")
	assert.Error(t, err)
}

func TestNormalizeURL_MissingHost(t *testing.T) {
	_, err := NormalizeURL("https://")
	assert.Error(t, err)
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "example.org", ExtractDomain("https://www.example.org/menu"))
	assert.Equal(t, "bistro.example.org", ExtractDomain("http://bistro.example.org"))
	assert.Equal(t, "", ExtractDomain("not a url"))
}
