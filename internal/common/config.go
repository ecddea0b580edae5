package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment" validate:"omitempty,oneof=restricted unrestricted auto"`
	Logging     LoggingConfig   `toml:"logging"`
	Fetcher     FetcherConfig   `toml:"fetcher"`
	PlacesAPI   PlacesAPIConfig `toml:"places_api"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
	Mailer      MailerConfig    `toml:"mailer"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// FetcherConfig contains page fetch configuration for both the browser
// and the plain HTTP strategies
type FetcherConfig struct {
	UserAgent          string        `toml:"user_agent"`           // Spoofed browser user agent
	RequestTimeout     time.Duration `toml:"request_timeout"`      // Plain HTTP request timeout
	PageLoadTimeout    time.Duration `toml:"page_load_timeout"`    // Max wait for the body element to render
	MinContentLength   int           `toml:"min_content_length"`   // Shorter pages are treated as blocked/empty
	ExploreContentCap  int           `toml:"explore_content_cap"`  // Max captured characters per explored link
	WindowWidth        int           `toml:"window_width"`
	WindowHeight       int           `toml:"window_height"`
	Headless           bool          `toml:"headless"`
	NoSandbox          bool          `toml:"no_sandbox"`
	DisableGPU         bool          `toml:"disable_gpu"`
	DisableImages      bool          `toml:"disable_images"`
	IgnoreCertErrors   bool          `toml:"ignore_cert_errors"` // Event sites frequently serve stale certificates
	ExploreLinks       bool          `toml:"explore_links"`      // Follow agenda/location links from the landing page
}

// PlacesAPIConfig contains Google Places API configuration
type PlacesAPIConfig struct {
	APIKey             string        `toml:"api_key"`              // Google Places API key
	RateLimit          time.Duration `toml:"rate_limit"`           // Minimum time between API requests
	RequestTimeout     time.Duration `toml:"request_timeout"`      // HTTP request timeout
	SearchRadius       int           `toml:"search_radius"`        // Default search radius in meters
	MaxResults         int           `toml:"max_results" validate:"omitempty,min=1,max=20"`
	EmailScrapeTimeout time.Duration `toml:"email_scrape_timeout"` // Timeout for restaurant website email scraping
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for AI operations (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.3)
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for AI operations (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.3)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"omitempty,oneof=gemini claude"`
}

// MailerConfig contains reservation email drafting configuration
type MailerConfig struct {
	PartySize  int    `toml:"party_size" validate:"omitempty,min=1"`
	SenderName string `toml:"sender_name"`
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability;
// only user-facing settings should be exposed in reperio.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "auto", // Detect restricted/unrestricted from runtime signals
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
		Fetcher: FetcherConfig{
			UserAgent:         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout:    15 * time.Second,
			PageLoadTimeout:   15 * time.Second,
			MinContentLength:  100,
			ExploreContentCap: 20000,
			WindowWidth:       1920,
			WindowHeight:      1080,
			Headless:          true,
			NoSandbox:         true,
			DisableGPU:        true,
			DisableImages:     true,
			IgnoreCertErrors:  true,
			ExploreLinks:      true,
		},
		PlacesAPI: PlacesAPIConfig{
			APIKey:             "", // User must provide API key in config file or GOOGLE_MAPS_API_KEY
			RateLimit:          1 * time.Second,
			RequestTimeout:     15 * time.Second,
			SearchRadius:       2000,
			MaxResults:         10,
			EmailScrapeTimeout: 5 * time.Second,
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-2.0-flash",
			Timeout:     "2m",
			Temperature: 0.3,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Timeout:     "2m",
			Temperature: 0.3,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Mailer: MailerConfig{
			PartySize:  4,
			SenderName: "",
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("REPERIO_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("REPERIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("REPERIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	// Fetcher configuration
	if userAgent := os.Getenv("REPERIO_FETCHER_USER_AGENT"); userAgent != "" {
		config.Fetcher.UserAgent = userAgent
	}
	if requestTimeout := os.Getenv("REPERIO_FETCHER_REQUEST_TIMEOUT"); requestTimeout != "" {
		if rt, err := time.ParseDuration(requestTimeout); err == nil {
			config.Fetcher.RequestTimeout = rt
		}
	}
	if exploreLinks := os.Getenv("REPERIO_FETCHER_EXPLORE_LINKS"); exploreLinks != "" {
		if el, err := strconv.ParseBool(exploreLinks); err == nil {
			config.Fetcher.ExploreLinks = el
		}
	}

	// Places API key: prefixed variable wins, the conventional Google
	// variable is accepted as a fallback
	if apiKey := os.Getenv("REPERIO_PLACES_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	} else if apiKey := os.Getenv("GOOGLE_MAPS_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	}
	if radius := os.Getenv("REPERIO_PLACES_SEARCH_RADIUS"); radius != "" {
		if r, err := strconv.Atoi(radius); err == nil {
			config.PlacesAPI.SearchRadius = r
		}
	}

	// LLM provider keys
	if apiKey := os.Getenv("REPERIO_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("REPERIO_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	} else if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if provider := os.Getenv("REPERIO_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}

	// Mailer configuration
	if partySize := os.Getenv("REPERIO_MAILER_PARTY_SIZE"); partySize != "" {
		if ps, err := strconv.Atoi(partySize); err == nil && ps > 0 {
			config.Mailer.PartySize = ps
		}
	}
	if sender := os.Getenv("REPERIO_MAILER_SENDER_NAME"); sender != "" {
		config.Mailer.SenderName = sender
	}
}
