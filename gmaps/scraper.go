package gmaps

import (
	"context"
	"log"
	"time"

	"github.com/sadewadee/business-contact-scraper/deduper"
)

const defaultBusinessDelay = 2 * time.Second

// Scraper coordinates the full pipeline for a list of business-type queries:
// text search, per-place detail lookup, contact-page crawl and optional email
// verification. Processing is strictly sequential; records are accumulated in
// the order they are produced (by type, then by search order within a type).
type Scraper struct {
	client        *Client
	crawler       *ContactCrawler
	verifier      *EmailVerifier
	dedup         deduper.Deduper
	location      string
	radius        int
	businessDelay time.Duration
}

type ScraperOption func(*Scraper)

// WithVerifier enables email verification on each record after crawling.
func WithVerifier(v *EmailVerifier) ScraperOption {
	return func(s *Scraper) {
		s.verifier = v
	}
}

// WithDeduper enables cross-query dedup by place ID. Without it a business
// matched by overlapping category searches appears once per query.
func WithDeduper(d deduper.Deduper) ScraperOption {
	return func(s *Scraper) {
		s.dedup = d
	}
}

// WithBusinessDelay sets the pause after each fully processed business.
func WithBusinessDelay(d time.Duration) ScraperOption {
	return func(s *Scraper) {
		s.businessDelay = d
	}
}

func NewScraper(client *Client, crawler *ContactCrawler, location string, radius int, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		client:        client,
		crawler:       crawler,
		location:      location,
		radius:        radius,
		businessDelay: defaultBusinessDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run scrapes every business type in order and returns all enriched records.
// The per-type result budget is maxResults divided by the number of types;
// remainder results are dropped.
func (s *Scraper) Run(ctx context.Context, businessTypes []string, maxResults int) []*Entry {
	if len(businessTypes) == 0 {
		return nil
	}

	perType := maxResults / len(businessTypes)

	var all []*Entry

	for _, businessType := range businessTypes {
		log.Printf("Searching for %s businesses in %s...", businessType, s.location)

		entries := s.client.Search(ctx, businessType, s.location, s.radius, perType)

		for _, entry := range entries {
			if s.dedup != nil && !s.dedup.AddIfNotExists(ctx, entry.PlaceID) {
				log.Printf("Skipping duplicate: %s", entry.Name)
				continue
			}

			log.Printf("Processing: %s", entry.Name)

			if entry.IsWebsiteValidForEmail() {
				entry.Emails = s.crawler.Crawl(ctx, entry.WebSite)
				if entry.Emails == nil {
					entry.Emails = []string{}
				}

				log.Printf("  Found %d email(s)", len(entry.Emails))
			} else {
				log.Printf("  No website available")
			}

			if s.verifier != nil {
				s.verifier.Verify(ctx, entry)
			}

			all = append(all, entry)

			sleep(ctx, s.businessDelay)
		}
	}

	return all
}
