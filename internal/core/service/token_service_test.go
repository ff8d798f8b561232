package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/selectshop/shop-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, tc := range []struct {
		subject string
		role    string
	}{
		{"alice", domain.RoleUser},
		{"bob", domain.RoleAdmin},
		{"르탄이", domain.RoleUser},
	} {
		token, err := svc.Issue(tc.subject, tc.role)
		if err != nil {
			t.Fatalf("Issue(%q) returned error: %v", tc.subject, err)
		}
		if strings.Count(token, ".") != 2 {
			t.Fatalf("expected three-segment token, got %q", token)
		}

		claims, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if claims.Subject != tc.subject || claims.Role != tc.role {
			t.Fatalf("claims mismatch: got %+v, want %s/%s", claims, tc.subject, tc.role)
		}
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret", time.Hour)
	verifier := NewTokenService("other-secret", time.Hour)

	token, err := issuer.Issue("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("Verify(%q): expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := time.Hour
	expiry := issuedAt.Add(ttl)

	svc := NewTokenService("secret", ttl)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue("alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// The expiry instant itself is still valid.
	svc.now = fixedClock(expiry)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("expected token valid at expiry instant, got %v", err)
	}

	// One second past expiry is not.
	svc.now = fixedClock(expiry.Add(time.Second))
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
