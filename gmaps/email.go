package gmaps

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// excludedEmailDomains are free/consumer providers and placeholder domains
// that are unlikely to be business-specific addresses.
var excludedEmailDomains = map[string]bool{
	"example.com": true,
	"test.com":    true,
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
}

// ExtractEmails returns the plausible business email addresses found in the
// given HTML: regex matches over the visible text plus the address portion of
// mailto: links. Results are lowercased, filtered against the excluded domain
// list and deduplicated. It is a best-effort heuristic, not a validator.
func ExtractEmails(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	candidates := textEmailExtractor(doc)
	candidates = append(candidates, mailtoEmailExtractor(doc)...)

	return filterEmails(candidates), nil
}

func textEmailExtractor(doc *goquery.Document) []string {
	return emailRe.FindAllString(doc.Text(), -1)
}

func mailtoEmailExtractor(doc *goquery.Document) []string {
	var emails []string

	doc.Find("a[href^='mailto:']").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}

		value := strings.TrimPrefix(href, "mailto:")
		// drop query parameters such as ?subject=...
		if idx := strings.Index(value, "?"); idx != -1 {
			value = value[:idx]
		}

		if value != "" {
			emails = append(emails, value)
		}
	})

	return emails
}

func filterEmails(candidates []string) []string {
	seen := map[string]bool{}

	var emails []string

	for _, c := range candidates {
		email := strings.ToLower(strings.TrimSpace(c))
		if email == "" || seen[email] {
			continue
		}

		idx := strings.LastIndex(email, "@")
		if idx < 0 || idx+1 >= len(email) {
			continue
		}

		if excludedEmailDomains[email[idx+1:]] {
			continue
		}

		seen[email] = true

		emails = append(emails, email)
	}

	return emails
}
