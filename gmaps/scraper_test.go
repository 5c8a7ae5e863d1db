package gmaps

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sadewadee/business-contact-scraper/deduper"
)

func newTestScraper(client *Client, opts ...ScraperOption) *Scraper {
	opts = append([]ScraperOption{WithBusinessDelay(0)}, opts...)
	crawler := NewContactCrawler(WithPageDelay(0))

	return NewScraper(client, crawler, "Caringbah, NSW", 5000, opts...)
}

func TestScraper_PerTypeIntegerSplit(t *testing.T) {
	ids := make([]string, 10)
	places := make(map[string]fakePlace, 10)

	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
		places[ids[i]] = fakePlace{Name: fmt.Sprintf("Biz %d", i)}
	}

	srv := newFakePlacesAPI(t, ids, places, nil)
	defer srv.Close()

	types := []string{"a", "b", "c", "d", "e"}

	s := newTestScraper(newTestClient(srv.URL))

	// 20/5 -> 4 per type
	require.Len(t, s.Run(context.Background(), types, 20), 20)

	// 22/5 -> still 4 per type, remainder dropped
	require.Len(t, s.Run(context.Background(), types, 22), 20)
}

func TestScraper_NoBusinessTypes(t *testing.T) {
	s := newTestScraper(newTestClient("http://127.0.0.1:0"))
	require.Nil(t, s.Run(context.Background(), nil, 20))
}

func TestScraper_DedupDropsRepeatedPlaces(t *testing.T) {
	srv := newFakePlacesAPI(t, []string{"p1"}, map[string]fakePlace{
		"p1": {Name: "Dual Tagged Pty"},
	}, nil)
	defer srv.Close()

	s := newTestScraper(newTestClient(srv.URL), WithDeduper(deduper.New()))

	entries := s.Run(context.Background(), []string{"law firm", "consulting firm"}, 4)
	require.Len(t, entries, 1)
}

func TestScraper_DuplicatesKeptWithoutDeduper(t *testing.T) {
	srv := newFakePlacesAPI(t, []string{"p1"}, map[string]fakePlace{
		"p1": {Name: "Dual Tagged Pty"},
	}, nil)
	defer srv.Close()

	s := newTestScraper(newTestClient(srv.URL))

	entries := s.Run(context.Background(), []string{"law firm", "consulting firm"}, 4)
	require.Len(t, entries, 2)
}

func TestScraper_EndToEnd(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<body>info@a.example someone@gmail.com</body>`))
	}))
	defer site.Close()

	srv := newFakePlacesAPI(t, []string{"a", "b"}, map[string]fakePlace{
		"a": {Name: "Biz A", Website: site.URL},
		"b": {Name: "Biz B"},
	}, nil)
	defer srv.Close()

	s := newTestScraper(newTestClient(srv.URL))

	entries := s.Run(context.Background(), []string{"law firm"}, 20)
	require.Len(t, entries, 2)

	require.Equal(t, []string{"info@a.example"}, entries[0].Emails)
	require.Empty(t, entries[1].Emails)

	var buf bytes.Buffer

	cw := csv.NewWriter(&buf)
	require.NoError(t, cw.Write(entries[0].CsvHeaders()))

	for _, e := range entries {
		require.NoError(t, cw.Write(e.CsvRow()))
	}

	cw.Flush()

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "info@a.example", rows[1][5])
	require.Equal(t, "1", rows[1][6])
	require.Equal(t, "", rows[2][5])
	require.Equal(t, "0", rows[2][6])
}

func TestScraper_SocialWebsiteNotCrawled(t *testing.T) {
	srv := newFakePlacesAPI(t, []string{"a"}, map[string]fakePlace{
		"a": {Name: "Social Only", Website: "https://facebook.com/socialonly"},
	}, nil)
	defer srv.Close()

	s := newTestScraper(newTestClient(srv.URL))

	entries := s.Run(context.Background(), []string{"law firm"}, 20)
	require.Len(t, entries, 1)
	require.Empty(t, entries[0].Emails)
}
