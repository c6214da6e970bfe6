package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "password" {
		t.Fatal("digest equals the plaintext password")
	}
	if !h.Verify("password", digest) {
		t.Fatal("Verify rejected the correct password")
	}
	if h.Verify("otherpassword", digest) {
		t.Fatal("Verify accepted a wrong password")
	}
}

func TestHashIsSaltedPerCall(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	first, err := h.Hash("password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two digests of the same password are identical; salt is missing")
	}
	if !h.Verify("password", first) || !h.Verify("password", second) {
		t.Fatal("Verify rejected a freshly created digest")
	}
}
