// Package web loads pages in a headless browser and converts them to
// markdown for the agent.
package web

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"
)

// Scraper fetches a page and returns its content as markdown.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (string, error)
}

// RodScraper renders pages in a throwaway headless Chromium, so content
// built by JavaScript is included.
type RodScraper struct {
	logger *zap.Logger
}

var _ Scraper = (*RodScraper)(nil)

func NewRodScraper(logger *zap.Logger) *RodScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RodScraper{logger: logger}
}

// Scrape launches a browser, loads rawURL and converts the rendered DOM.
// The whole operation is bounded by ctx.
func (s *RodScraper) Scrape(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}

	l := launcher.New().Context(ctx).Headless(true).Leakless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := stealth.Page(browser)
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	if err := page.Navigate(rawURL); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", rawURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s: %w", rawURL, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading page HTML: %w", err)
	}
	s.logger.Debug("page scraped", zap.String("url", rawURL), zap.Int("html_bytes", len(html)))
	return ToMarkdown(html, rawURL)
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	return nil
}

// ToMarkdown converts an HTML document to GitHub-flavored markdown. Relative
// links are resolved against pageURL when it is set.
func ToMarkdown(html, pageURL string) (string, error) {
	opts := &md.Options{}
	if base, err := url.Parse(strings.TrimSpace(pageURL)); err == nil && base.Host != "" {
		opts.GetAbsoluteURL = func(_ *goquery.Selection, rawURL, _ string) string {
			return resolveURL(base, rawURL)
		}
	}
	converter := md.NewConverter(md.DomainFromURL(pageURL), true, opts)
	converter.Use(plugin.GitHubFlavored())
	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting html to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// resolveURL makes a link or image source absolute against the page it came
// from, keeping the page's scheme. Unparseable and data URLs are returned
// unchanged.
func resolveURL(base *url.URL, rawURL string) string {
	ref, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || ref.Scheme == "data" {
		return rawURL
	}
	return base.ResolveReference(ref).String()
}
