package fetcher

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
)

// Captured content keys returned by explore
const (
	KeyAgendaContent   = "agenda_content"
	KeyLocationContent = "location_content"
)

// navSelectors are the link patterns worth following from an event
// landing page, in the order they are probed
var navSelectors = []string{
	`a[href*="agenda"]`,
	`a[href*="schedule"]`,
	`a[href*="program"]`,
	`a[href*="location"]`,
	`a[href*="venue"]`,
	`a[href*="address"]`,
	`[class*="tab"] a`,
	`[class*="menu"] a`,
	`nav a`,
}

// agendaKeywords and locationKeywords classify a followed link's topic
// from its text or href
var (
	agendaKeywords   = []string{"agenda", "schedule", "program", "details"}
	locationKeywords = []string{"location", "venue", "address"}
)

// explorer follows navigation links from a fetched page and captures
// the content of agenda and location sub-pages as markdown
type explorer struct {
	config    *common.FetcherConfig
	logger    arbor.ILogger
	converter *md.Converter
}

func newExplorer(config *common.FetcherConfig, logger arbor.ILogger) *explorer {
	return &explorer{
		config:    config,
		logger:    logger,
		converter: md.NewConverter("", true, nil),
	}
}

type fetchFunc func(ctx context.Context, url string) (*interfaces.PageContent, error)

// explore scans the page for agenda and location links, fetches the
// first match for each topic, and returns the captured content as
// markdown capped at the configured limit. Best-effort throughout:
// a failed sub-fetch simply leaves that topic absent.
func (e *explorer) explore(ctx context.Context, page *interfaces.PageContent, fetch fetchFunc) map[string]string {
	captured := map[string]string{}
	if page == nil || page.HTML == "" {
		return captured
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		e.logger.Warn().Err(err).Msg("Failed to parse page for exploration")
		return captured
	}

	agendaURL := ""
	locationURL := ""

	for _, selector := range navSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok || href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
				return true
			}

			absolute := resolveLink(page.URL, href)
			if absolute == "" {
				return true
			}

			probe := strings.ToLower(sel.Text() + " " + href)
			if agendaURL == "" && containsAny(probe, agendaKeywords) {
				agendaURL = absolute
			}
			if locationURL == "" && containsAny(probe, locationKeywords) {
				locationURL = absolute
			}

			return agendaURL == "" || locationURL == ""
		})
		if agendaURL != "" && locationURL != "" {
			break
		}
	}

	if agendaURL != "" && agendaURL != page.URL {
		if content := e.capture(ctx, agendaURL, fetch); content != "" {
			captured[KeyAgendaContent] = content
		}
	}
	if locationURL != "" && locationURL != page.URL && locationURL != agendaURL {
		if content := e.capture(ctx, locationURL, fetch); content != "" {
			captured[KeyLocationContent] = content
		}
	}

	return captured
}

// capture fetches a linked page and converts it to markdown, capped at
// the configured content limit
func (e *explorer) capture(ctx context.Context, linkURL string, fetch fetchFunc) string {
	page, err := fetch(ctx, linkURL)
	if err != nil {
		e.logger.Debug().
			Err(err).
			Str("url", linkURL).
			Msg("Exploration fetch failed")
		return ""
	}

	content := page.Text
	if page.HTML != "" {
		if markdown, err := e.converter.ConvertString(page.HTML); err == nil {
			content = markdown
		}
	}

	if len(content) > e.config.ExploreContentCap {
		content = content[:e.config.ExploreContentCap]
	}

	e.logger.Debug().
		Str("url", linkURL).
		Int("content_length", len(content)).
		Msg("Captured linked page content")

	return content
}

// resolveLink makes href absolute against the page URL
func resolveLink(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
