package gmaps

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultMaxPages = 3

const defaultPageDelay = time.Second

const crawlerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// contactPaths is the fixed template of well-known contact-related pages
// tried against a website's root.
var contactPaths = []string{
	"/contact",
	"/contact-us",
	"/about",
	"/about-us",
}

// ContactCrawler fetches a bounded set of likely contact pages from a
// business website and extracts the emails found on them.
type ContactCrawler struct {
	httpClient *http.Client
	maxPages   int
	pageDelay  time.Duration
}

type ContactCrawlerOption func(*ContactCrawler)

// WithMaxPages caps the number of pages fetched per website.
func WithMaxPages(n int) ContactCrawlerOption {
	return func(c *ContactCrawler) {
		c.maxPages = n
	}
}

// WithPageDelay sets the pause after each attempted page fetch.
func WithPageDelay(d time.Duration) ContactCrawlerOption {
	return func(c *ContactCrawler) {
		c.pageDelay = d
	}
}

func WithCrawlerHTTPClient(hc *http.Client) ContactCrawlerOption {
	return func(c *ContactCrawler) {
		c.httpClient = hc
	}
}

func NewContactCrawler(opts ...ContactCrawlerOption) *ContactCrawler {
	c := &ContactCrawler{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxPages:  defaultMaxPages,
		pageDelay: defaultPageDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Crawl visits at most maxPages candidate pages of the given website, in
// fixed order, and returns the merged deduplicated set of emails found.
// Failures on individual pages are logged and skipped; an unreachable site
// yields an empty result, never an error.
func (c *ContactCrawler) Crawl(ctx context.Context, websiteURL string) []string {
	if websiteURL == "" {
		return nil
	}

	seen := map[string]bool{}

	var emails []string

	for _, pageURL := range c.candidatePages(websiteURL) {
		found, err := c.scrapePage(ctx, pageURL)
		if err != nil {
			log.Printf("error scraping %s: %v", pageURL, err)
		}

		for _, email := range found {
			if !seen[email] {
				emails = append(emails, email)
				seen[email] = true
			}
		}

		sleep(ctx, c.pageDelay)
	}

	return emails
}

// candidatePages returns the website URL itself followed by the well-known
// contact paths resolved against its scheme+host, capped at maxPages.
func (c *ContactCrawler) candidatePages(websiteURL string) []string {
	pages := []string{websiteURL}

	if u, err := url.Parse(websiteURL); err == nil && u.Scheme != "" && u.Host != "" {
		base := u.Scheme + "://" + u.Host
		for _, p := range contactPaths {
			pages = append(pages, base+p)
		}
	}

	if len(pages) > c.maxPages {
		pages = pages[:c.maxPages]
	}

	return pages
}

func (c *ContactCrawler) scrapePage(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", crawlerUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return ExtractEmails(body)
}
