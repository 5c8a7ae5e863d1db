package gmaps

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractEmails_TextAndMailto(t *testing.T) {
	html := `<html><body>
		<p>Reach us at Info@Acme.COM or sales@acme.com.</p>
		<a href="mailto:support@acme.com?subject=Hello%20there">Support</a>
		<a href="mailto:info@acme.com">Info again</a>
	</body></html>`

	emails, err := ExtractEmails([]byte(html))
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"info@acme.com", "sales@acme.com", "support@acme.com"}, emails)
}

func TestExtractEmails_MailtoQueryStringStripped(t *testing.T) {
	html := `<a href="mailto:hello@corp.io?subject=quote&body=hi">mail</a>`

	emails, err := ExtractEmails([]byte(html))
	require.NoError(t, err)
	require.Equal(t, []string{"hello@corp.io"}, emails)
}

func TestExtractEmails_ExcludedDomains(t *testing.T) {
	html := `<body>
		someone@gmail.com other@YAHOO.com nope@hotmail.com
		placeholder@example.com qa@test.com real@firm.com.au
	</body>`

	emails, err := ExtractEmails([]byte(html))
	require.NoError(t, err)
	require.Equal(t, []string{"real@firm.com.au"}, emails)
}

func TestExtractEmails_DeduplicatesCaseInsensitive(t *testing.T) {
	html := `<body>Admin@Firm.com admin@firm.com ADMIN@FIRM.COM</body>`

	emails, err := ExtractEmails([]byte(html))
	require.NoError(t, err)
	require.Equal(t, []string{"admin@firm.com"}, emails)
}

func TestExtractEmails_NoMatches(t *testing.T) {
	emails, err := ExtractEmails([]byte(`<body><p>No contact details here.</p></body>`))
	require.NoError(t, err)
	require.Empty(t, emails)
}

func TestFilterEmails_DomainAfterLastAt(t *testing.T) {
	// mailto hrefs can carry malformed addresses with more than one @;
	// the exclusion check uses the domain after the last one.
	got := filterEmails([]string{"info@ours@gmail.com", "ok@firm.com"})
	require.Equal(t, []string{"ok@firm.com"}, got)
}
