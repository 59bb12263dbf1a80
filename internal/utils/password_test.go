package utils

import (
	"strings"
	"testing"
)

func TestPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Fatalf("expected salt$hash layout, got %q", hashed)
	}
	if strings.Contains(hashed, "correct horse") {
		t.Fatal("plaintext must never appear in the stored blob")
	}
	if !VerifyPassword(hashed, "correct horse battery staple") {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword(hashed, "wrong password") {
		t.Fatal("wrong password must not verify")
	}
}

func TestPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ by salt")
	}
}

func TestVerifyPassword_MalformedStored(t *testing.T) {
	if VerifyPassword("nodollar", "x") {
		t.Fatal("blob without separator must not verify")
	}
	if VerifyPassword("salt$nothex!!", "x") {
		t.Fatal("non-hex hash must not verify")
	}
	if VerifyPassword("", "x") {
		t.Fatal("empty blob must not verify")
	}
}
