package identity

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestIssueGuestAndResolve(t *testing.T) {
	svc := New(time.Hour)
	token, key, err := svc.IssueGuest(context.Background())
	if err != nil {
		t.Fatalf("IssueGuest: %v", err)
	}
	if !strings.HasPrefix(key, "guest-") {
		t.Fatalf("unexpected identity key %q", key)
	}
	if got := svc.Resolve(context.Background(), token); got != key {
		t.Fatalf("expected %q, got %q", key, got)
	}
}

func TestIssueGuestKeysAreUnique(t *testing.T) {
	svc := New(time.Hour)
	_, a, err := svc.IssueGuest(context.Background())
	if err != nil {
		t.Fatalf("IssueGuest: %v", err)
	}
	_, b, err := svc.IssueGuest(context.Background())
	if err != nil {
		t.Fatalf("IssueGuest: %v", err)
	}
	if a == b {
		t.Fatalf("identity keys must be unique, got %q twice", a)
	}
}

func TestResolveFallsBackToGuest(t *testing.T) {
	svc := New(time.Hour)
	if got := svc.Resolve(context.Background(), ""); got != GuestKey {
		t.Fatalf("empty token: expected %q, got %q", GuestKey, got)
	}
	if got := svc.Resolve(context.Background(), "unknown-token"); got != GuestKey {
		t.Fatalf("unknown token: expected %q, got %q", GuestKey, got)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	svc := New(time.Hour)
	token, err := svc.tokens.Issue("guest-abc", -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if got := svc.Resolve(context.Background(), token); got != GuestKey {
		t.Fatalf("expired token: expected %q, got %q", GuestKey, got)
	}
}
