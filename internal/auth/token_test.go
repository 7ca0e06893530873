package auth

import (
	"testing"
	"time"

	"adminpanel/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	u := domain.User{ID: "u-1", Email: "admin@example.com", Role: domain.RoleAdmin}

	token, exp, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry must be in the future: %v", exp)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	rc := claims.Context()
	if rc.UserID != "u-1" || rc.Role != domain.RoleAdmin || rc.Email != "admin@example.com" {
		t.Fatalf("unexpected context: %+v", rc)
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("one", time.Hour).Issue(domain.User{ID: "u", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := NewTokenIssuer("two", time.Hour).Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return base }

	token, _, err := issuer.Issue(domain.User{ID: "u", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	issuer.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := issuer.Parse(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := NewTokenIssuer("secret", time.Hour).Parse("not-a-token"); err == nil {
		t.Fatalf("expected error")
	}
}
