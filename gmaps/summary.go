package gmaps

import "log"

// Summary aggregates counts over a finished scrape run.
type Summary struct {
	TotalBusinesses     int
	BusinessesWithEmail int
	TotalEmails         int
}

func Summarize(entries []*Entry) Summary {
	var s Summary

	s.TotalBusinesses = len(entries)

	for _, e := range entries {
		if len(e.Emails) > 0 {
			s.BusinessesWithEmail++
		}

		s.TotalEmails += len(e.Emails)
	}

	return s
}

// AverageEmails returns the mean email count per business, 0.0 for an empty
// run.
func (s Summary) AverageEmails() float64 {
	if s.TotalBusinesses == 0 {
		return 0.0
	}

	return float64(s.TotalEmails) / float64(s.TotalBusinesses)
}

func (s Summary) Log() {
	log.Printf("=== SCRAPING SUMMARY ===")
	log.Printf("Total businesses found: %d", s.TotalBusinesses)
	log.Printf("Businesses with emails: %d", s.BusinessesWithEmail)
	log.Printf("Total emails found: %d", s.TotalEmails)
	log.Printf("Average emails per business: %.1f", s.AverageEmails())
}
