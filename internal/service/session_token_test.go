package service

import (
	"errors"
	"testing"
	"time"
)

func TestSessionToken_IssueAndVerify(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Hour)

	token, err := svc.Issue("session-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	sessionID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if sessionID != "session-123" {
		t.Fatalf("unexpected session id: %q", sessionID)
	}
}

func TestSessionToken_WrongSecretRejected(t *testing.T) {
	issuer := NewSessionTokenService("secret-a", time.Hour)
	verifier := NewSessionTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("session-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSessionToken_ExpiredRejected(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Hour)
	svc.ttl = -time.Minute

	token, err := svc.Issue("session-123")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSessionToken_EmptyInputsRejected(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Hour)

	if _, err := svc.Issue(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty session id, got %v", err)
	}
	if _, err := svc.Verify("  "); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for blank token, got %v", err)
	}

	unsecured := NewSessionTokenService("", time.Hour)
	if _, err := unsecured.Issue("session-123"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without secret, got %v", err)
	}
}

func TestSessionToken_GarbageRejected(t *testing.T) {
	svc := NewSessionTokenService("test-secret", time.Hour)
	if _, err := svc.Verify("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
