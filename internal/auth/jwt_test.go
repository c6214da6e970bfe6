package auth

import (
	"testing"
	"time"

	"github.com/KCCPMG/ReadingList/internal/apperrors"
)

func TestIssueAndVerify(t *testing.T) {
	ts := NewTokenService("super-secret", time.Hour)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "user-123" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "user-123")
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	ts := NewTokenService("super-secret", time.Hour)

	_, err := ts.Verify("badtoken")
	if err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
	if apperrors.KindOf(err) != apperrors.KindInvalidToken {
		t.Fatalf("expected invalid_token kind, got %v", apperrors.KindOf(err))
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("right-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected error for token signed with a different secret, got nil")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	ts := NewTokenService("super-secret", -1*time.Second)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = ts.Verify(token)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if apperrors.KindOf(err) != apperrors.KindInvalidToken {
		t.Fatalf("expected invalid_token kind, got %v", apperrors.KindOf(err))
	}
}
