package passhash

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptRoundTrip(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !HasBcryptTag(encoded) {
		t.Fatalf("expected bcrypt tag on %q", encoded)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Fatalf("expected verify to succeed for the original password")
	}
	if h.Verify("wrong password", encoded) {
		t.Fatalf("expected verify to fail for a wrong password")
	}
}

func TestBcryptSaltsDiffer(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must not share a salt")
	}
}

func TestBcryptCostClamped(t *testing.T) {
	h := NewBcrypt(99)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected out-of-range cost to fall back to default, got %d", h.cost)
	}
	h = NewBcrypt(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected negative cost to fall back to default, got %d", h.cost)
	}
}

func TestHasBcryptTag(t *testing.T) {
	for _, s := range []string{"$2a$10$abc", "$2b$12$abc", "$2y$04$abc"} {
		if !HasBcryptTag(s) {
			t.Errorf("expected %q to be recognized as bcrypt", s)
		}
	}
	for _, s := range []string{"", "plaintext", "$1$md5crypt", "2a$10$notag"} {
		if HasBcryptTag(s) {
			t.Errorf("expected %q not to be recognized as bcrypt", s)
		}
	}
}

func TestLegacyFallbackPlainText(t *testing.T) {
	h := NewLegacyFallback(NewBcrypt(bcrypt.MinCost), nil)

	// A row seeded before hashing was introduced.
	if !h.Verify("123456", "123456") {
		t.Fatalf("expected plain-text row to verify by equality")
	}
	if h.Verify("123456", "654321") {
		t.Fatalf("expected mismatched plain-text row to fail")
	}
}

func TestLegacyFallbackDelegatesForBcryptRows(t *testing.T) {
	inner := NewBcrypt(bcrypt.MinCost)
	h := NewLegacyFallback(inner, nil)

	encoded, err := inner.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !h.Verify("s3cret", encoded) {
		t.Fatalf("expected bcrypt row to verify through the wrapped hasher")
	}
	// The raw hash string must never match by equality.
	if h.Verify(encoded, encoded) {
		t.Fatalf("bcrypt-tagged rows must not fall back to equality")
	}
}

func TestLegacyFallbackNeverHashesPlainText(t *testing.T) {
	h := NewLegacyFallback(NewBcrypt(bcrypt.MinCost), nil)

	encoded, err := h.Hash("fresh password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$2") {
		t.Fatalf("new hashes must be bcrypt tokens, got %q", encoded)
	}
}
