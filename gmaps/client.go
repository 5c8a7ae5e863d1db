package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

const defaultDetailDelay = 100 * time.Millisecond

// Client talks to the Google Places API (text search + place details).
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	detailDelay time.Duration
}

type ClientOption func(*Client)

// WithBaseURL overrides the Places API base URL. Used by tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDetailDelay sets the pause between consecutive place-details calls.
func WithDetailDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.detailDelay = d
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     defaultPlacesBaseURL,
		detailDelay: defaultDetailDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search issues one text-search call combining query and location, then
// fetches place details for each returned result until maxResults records
// have been collected. Only the first results page is consulted; when more
// results exist the search under-fetches. Transport and API failures are
// logged and the records collected so far are returned.
func (c *Client) Search(ctx context.Context, query, location string, radius, maxResults int) []*Entry {
	var entries []*Entry

	q := url.Values{}
	q.Set("query", fmt.Sprintf("%s in %s", query, location))
	q.Set("radius", strconv.Itoa(radius))
	q.Set("key", c.apiKey)

	u := c.baseURL + "/textsearch/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Printf("error searching businesses: %v", err)
		return entries
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("error searching businesses: %v", err)
		return entries
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("error searching businesses: status %s", resp.Status)
		return entries
	}

	var out struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Results      []struct {
			PlaceID string `json:"place_id"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("error searching businesses: %v", err)
		return entries
	}

	if out.Status != "OK" {
		log.Printf("API error: %s", out.Status)

		if out.ErrorMessage != "" {
			log.Printf("error details: %s", out.ErrorMessage)
		}

		log.Printf("API key being used: %s", maskKey(c.apiKey))

		return entries
	}

	for _, place := range out.Results {
		if len(entries) >= maxResults {
			break
		}

		entry, err := c.PlaceDetails(ctx, place.PlaceID)
		if err != nil {
			log.Printf("error getting place details: %v", err)
		} else if entry != nil {
			entries = append(entries, entry)
		}

		sleep(ctx, c.detailDelay)
	}

	return entries
}

// PlaceDetails fetches the details for a single place and maps them into an
// Entry with empty-string defaults for missing optional fields. A nil Entry
// with nil error means the API answered with a non-OK status and the place
// should be skipped.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*Entry, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "name,formatted_address,formatted_phone_number,website,business_status,types")
	q.Set("key", c.apiKey)

	u := c.baseURL + "/details/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place details status: %s", resp.Status)
	}

	var out struct {
		Status string `json:"status"`
		Result struct {
			Name           string   `json:"name"`
			Address        string   `json:"formatted_address"`
			Phone          string   `json:"formatted_phone_number"`
			Website        string   `json:"website"`
			BusinessStatus string   `json:"business_status"`
			Types          []string `json:"types"`
		} `json:"result"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if out.Status != "OK" {
		return nil, nil
	}

	return &Entry{
		PlaceID:    placeID,
		Name:       out.Result.Name,
		Address:    out.Result.Address,
		Phone:      out.Result.Phone,
		WebSite:    out.Result.Website,
		Status:     out.Result.BusinessStatus,
		Categories: out.Result.Types,
		Emails:     []string{},
	}, nil
}

func maskKey(key string) string {
	if key == "" {
		return "no API key provided"
	}

	if len(key) <= 10 {
		return key + "..."
	}

	return key[:10] + "..."
}

// sleep pauses for d, returning early when ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
