package gmaps

import (
	"context"
	"testing"
)

func TestEmailVerifier_NoEmails(t *testing.T) {
	v := NewEmailVerifier()

	entry := &Entry{Name: "A", Verified: true}
	v.Verify(context.Background(), entry)

	if entry.Verified {
		t.Fatal("expected Verified to reset to false when there are no emails")
	}
}

func TestEmailVerifier_InvalidSyntax(t *testing.T) {
	v := NewEmailVerifier()

	entry := &Entry{Name: "A", Emails: []string{"not-an-email"}}
	v.Verify(context.Background(), entry)

	if entry.Verified {
		t.Fatal("expected Verified to stay false for invalid syntax")
	}
}
