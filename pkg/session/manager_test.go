package session

import (
	"errors"
	"testing"
	"time"
)

func fixedManager(secret string, at time.Time) *Manager {
	m := NewManager(secret)
	m.now = func() time.Time { return at }
	return m
}

func TestIssueAndParse(t *testing.T) {
	issued := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	m := fixedManager("test-secret", issued)

	credential, err := m.Issue("user-123", "Ada", "https://example.com/ada.png")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := m.Parse(credential)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want user-123", claims.Subject)
	}
	if claims.Name != "Ada" || claims.Picture != "https://example.com/ada.png" {
		t.Errorf("profile = %q/%q, want issued values", claims.Name, claims.Picture)
	}
	if !claims.IssuedAt.Equal(issued) {
		t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt, issued)
	}
	if want := issued.Add(TTL); !claims.Expires.Equal(want) {
		t.Errorf("Expires = %v, want issue time + 5 days (%v)", claims.Expires, want)
	}
}

func TestParseExpired(t *testing.T) {
	issued := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	m := fixedManager("test-secret", issued)

	credential, err := m.Issue("user-123", "", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Just before expiry is still valid, just after is not.
	m.now = func() time.Time { return issued.Add(TTL - time.Minute) }
	if _, err := m.Parse(credential); err != nil {
		t.Errorf("Parse just before expiry failed: %v", err)
	}

	m.now = func() time.Time { return issued.Add(TTL + time.Minute) }
	if _, err := m.Parse(credential); !errors.Is(err, ErrExpired) {
		t.Errorf("Parse after expiry = %v, want ErrExpired", err)
	}
}

func TestParseMalformed(t *testing.T) {
	m := NewManager("test-secret")

	tests := []struct {
		name       string
		credential string
	}{
		{name: "garbage", credential: "not-a-token"},
		{name: "empty", credential: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Parse(tt.credential); !errors.Is(err, ErrMalformed) {
				t.Errorf("Parse = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a")
	verifier := NewManager("secret-b")

	credential, err := issuer.Issue("user-123", "", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := verifier.Parse(credential); !errors.Is(err, ErrMalformed) {
		t.Errorf("Parse with wrong secret = %v, want ErrMalformed", err)
	}
}

func TestParseRejectsMissingSubject(t *testing.T) {
	m := NewManager("test-secret")

	credential, err := m.Issue("", "No Subject", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := m.Parse(credential); !errors.Is(err, ErrMalformed) {
		t.Errorf("Parse with empty subject = %v, want ErrMalformed", err)
	}
}
