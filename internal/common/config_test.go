package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "auto", config.Environment)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, 15*time.Second, config.Fetcher.RequestTimeout)
	assert.Equal(t, 100, config.Fetcher.MinContentLength)
	assert.Equal(t, 20000, config.Fetcher.ExploreContentCap)
	assert.Equal(t, 2000, config.PlacesAPI.SearchRadius)
	assert.Equal(t, 10, config.PlacesAPI.MaxResults)
	assert.Equal(t, 5*time.Second, config.PlacesAPI.EmailScrapeTimeout)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
	assert.Equal(t, 4, config.Mailer.PartySize)
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reperio.toml")
	content := `
environment = "restricted"

[logging]
level = "debug"

[places_api]
search_radius = 5000

[mailer]
party_size = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "restricted", config.Environment)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 5000, config.PlacesAPI.SearchRadius)
	assert.Equal(t, 2, config.Mailer.PartySize)
	// Untouched sections keep their defaults
	assert.Equal(t, 100, config.Fetcher.MinContentLength)
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.toml")
	second := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(first, []byte("[mailer]\nparty_size = 2\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[mailer]\nparty_size = 8\n"), 0644))

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 8, config.Mailer.PartySize)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/reperio.toml")
	assert.Error(t, err)
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("REPERIO_ENV", "unrestricted")
	t.Setenv("REPERIO_LOG_LEVEL", "warn")
	t.Setenv("REPERIO_PLACES_API_KEY", "prefixed-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "fallback-key")
	t.Setenv("REPERIO_MAILER_PARTY_SIZE", "6")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "unrestricted", config.Environment)
	assert.Equal(t, "warn", config.Logging.Level)
	// The prefixed variable wins over the conventional Google one
	assert.Equal(t, "prefixed-key", config.PlacesAPI.APIKey)
	assert.Equal(t, 6, config.Mailer.PartySize)
}

func TestLoadFromFiles_ConventionalKeyFallback(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "fallback-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "fallback-key", config.PlacesAPI.APIKey)
	assert.Equal(t, "gemini-key", config.Gemini.APIKey)
}

func TestLoadFromFiles_InvalidEnvironmentRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`environment = "cloud"`), 0644))

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("environment = ["), 0644))

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}
