package gmaps

import (
	"strconv"
	"strings"
)

// Entry is a single business record produced by the pipeline: the place
// details returned by the Places API plus the emails harvested from the
// business website. Emails is assigned exactly once, after the contact-page
// crawl; records without a website keep an empty email set.
type Entry struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Phone      string   `json:"phone"`
	WebSite    string   `json:"website"`
	Status     string   `json:"business_status"`
	Categories []string `json:"business_types"`
	Emails     []string `json:"emails"`

	// Verified is set by the optional email verification step and is
	// carried in JSON output only; the CSV schema is fixed.
	Verified bool `json:"verified,omitempty"`
}

// IsWebsiteValidForEmail reports whether the entry's website is worth
// crawling for emails. Social and video platform links returned by the API
// instead of a real business site are skipped.
func (e *Entry) IsWebsiteValidForEmail() bool {
	s := strings.ToLower(strings.TrimSpace(e.WebSite))
	if s == "" {
		return false
	}

	block := []string{
		"facebook.com",
		"instagram.com",
		"twitter.com",
		"x.com",
		"tiktok.com",
		"youtube.com",
		"youtu.be",
	}

	for _, b := range block {
		if strings.Contains(s, b) {
			return false
		}
	}

	return true
}

func (e *Entry) CsvHeaders() []string {
	return []string{
		"name",
		"address",
		"phone",
		"website",
		"business_types",
		"emails",
		"email_count",
	}
}

func (e *Entry) CsvRow() []string {
	return []string{
		e.Name,
		e.Address,
		e.Phone,
		e.WebSite,
		strings.Join(e.Categories, ", "),
		strings.Join(e.Emails, "; "),
		strconv.Itoa(len(e.Emails)),
	}
}
