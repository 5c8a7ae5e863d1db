package gmaps

import (
	"context"
	"strings"
	"time"

	emailverifier "github.com/AfterShip/email-verifier"
	"github.com/mcnijman/go-emailaddress"
)

const defaultVerifyTimeout = 3 * time.Second

// EmailVerifier performs fast email verification on scraped records.
// Policy: DNS/MX-focused check on the first extracted email with a short
// timeout. Entry.Verified becomes true when the address is syntactically
// valid and its domain has MX records (or the verifier reports it reachable).
type EmailVerifier struct {
	verifier *emailverifier.Verifier
	timeout  time.Duration
}

func NewEmailVerifier() *EmailVerifier {
	return &EmailVerifier{
		verifier: emailverifier.NewVerifier(),
		timeout:  defaultVerifyTimeout,
	}
}

// Verify checks the first email of the entry and sets Entry.Verified.
// Timeouts and verifier errors keep Verified false (fail-closed).
func (v *EmailVerifier) Verify(ctx context.Context, entry *Entry) {
	entry.Verified = false

	if len(entry.Emails) == 0 {
		return
	}

	raw := strings.TrimSpace(entry.Emails[0])
	if raw == "" {
		return
	}

	// quick syntax parse to avoid unnecessary verifier calls
	if _, err := emailaddress.Parse(raw); err != nil {
		return
	}

	vctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	ch := make(chan bool, 1)

	go func() {
		defer func() { _ = recover() }()

		res, err := v.verifier.Verify(raw)
		if err != nil || res == nil {
			ch <- false
			return
		}

		deliverable := false
		if res.SMTP != nil && res.SMTP.Deliverable {
			deliverable = true
		} else if res.Syntax.Valid && res.HasMxRecords {
			deliverable = true
		}

		if res.Reachable == "yes" {
			deliverable = true
		}

		ch <- deliverable
	}()

	select {
	case <-vctx.Done():
	case deliverable := <-ch:
		entry.Verified = deliverable
	}
}
