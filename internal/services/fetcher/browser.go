package fetcher

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
)

// browserStrategy renders pages in headless Chrome via chromedp.
// JavaScript-heavy event sites need a real renderer before any text
// is visible.
type browserStrategy struct {
	config *common.FetcherConfig
	logger arbor.ILogger
}

func newBrowserStrategy(config *common.FetcherConfig, logger arbor.ILogger) *browserStrategy {
	return &browserStrategy{
		config: config,
		logger: logger,
	}
}

func (b *browserStrategy) Name() string {
	return SourceBrowser
}

// Available reports whether a Chrome binary can be found on this host
func (b *browserStrategy) Available() bool {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// Fetch renders the page and returns its full HTML plus visible text
func (b *browserStrategy) Fetch(ctx context.Context, url string) (*interfaces.PageContent, error) {
	allocatorOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.config.Headless),
		chromedp.Flag("no-sandbox", b.config.NoSandbox),
		chromedp.Flag("disable-gpu", b.config.DisableGPU),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(b.config.UserAgent),
		chromedp.WindowSize(b.config.WindowWidth, b.config.WindowHeight),
	)
	if b.config.DisableImages {
		allocatorOpts = append(allocatorOpts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	if b.config.IgnoreCertErrors {
		allocatorOpts = append(allocatorOpts, chromedp.Flag("ignore-certificate-errors", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	timeoutCtx, timeoutCancel := context.WithTimeout(browserCtx, b.config.PageLoadTimeout)
	defer timeoutCancel()

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser navigation failed: %w", err)
	}

	text, err := extractVisibleText(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered page: %w", err)
	}

	if len(text) < b.config.MinContentLength {
		return nil, fmt.Errorf("retrieved content is too short - possible blocking or empty page")
	}

	return &interfaces.PageContent{
		URL:    url,
		HTML:   html,
		Text:   text,
		Source: SourceBrowser,
	}, nil
}

// extractVisibleText strips scripts and styles and collapses
// whitespace to a single space
func extractVisibleText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	return strings.Join(strings.Fields(text), " "), nil
}
