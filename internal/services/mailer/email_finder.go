package mailer

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
)

// emailPattern matches conventional mailbox addresses in page text
var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

// excludedDomains filter out placeholder and personal mailboxes that
// are never a restaurant's booking address
var excludedDomains = []string{"example.com", "test.com", "gmail.com", "yahoo.com", "hotmail.com"}

// excludedPrefixes filter out automated and platform mailboxes
var excludedPrefixes = []string{"noreply", "no-reply", "admin", "webmaster", "info@facebook", "info@twitter"}

// maxEmailLength rejects regex matches that ran on into surrounding text
const maxEmailLength = 50

// EmailFinder scrapes a restaurant's website for a contact address,
// generating a likely one from the site's domain when the scrape
// finds nothing
type EmailFinder struct {
	logger arbor.ILogger
	client *http.Client
}

// NewEmailFinder creates an email finder with the configured scrape timeout
func NewEmailFinder(config *common.PlacesAPIConfig, logger arbor.ILogger) *EmailFinder {
	return &EmailFinder{
		logger: logger,
		client: &http.Client{
			Timeout: config.EmailScrapeTimeout,
		},
	}
}

// FindEmail returns the best contact address for a restaurant website.
// Best-effort throughout: any failure produces "" rather than an error.
func (f *EmailFinder) FindEmail(ctx context.Context, websiteURL string) string {
	if email := f.scrapeWebsite(ctx, websiteURL); email != "" {
		return email
	}
	return likelyEmail(websiteURL)
}

// scrapeWebsite fetches the site and scans its text for a usable address
func (f *EmailFinder) scrapeWebsite(ctx context.Context, websiteURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, websiteURL, nil)
	if err != nil {
		return ""
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug().
			Err(err).
			Str("website", websiteURL).
			Msg("Email scrape request failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	content := strings.ToLower(string(body))
	for _, match := range emailPattern.FindAllString(content, -1) {
		email := strings.TrimSpace(match)
		if usableEmail(email) {
			f.logger.Debug().
				Str("website", websiteURL).
				Str("email", email).
				Msg("Found contact email on website")
			return email
		}
	}

	return ""
}

// usableEmail applies the exclusion filters
func usableEmail(email string) bool {
	if len(email) > maxEmailLength {
		return false
	}
	for _, domain := range excludedDomains {
		if strings.Contains(email, domain) {
			return false
		}
	}
	for _, prefix := range excludedPrefixes {
		if strings.Contains(email, prefix) {
			return false
		}
	}
	return true
}

// likelyEmail guesses info@<domain> from the website address. The
// info@ mailbox is the most common booking contact for restaurants.
func likelyEmail(websiteURL string) string {
	domain := common.ExtractDomain(websiteURL)
	if domain == "" {
		return ""
	}
	return "info@" + domain
}
