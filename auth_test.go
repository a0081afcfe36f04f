package main

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := hashPassword("pw123")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if strings.Contains(hash, "pw123") {
		t.Fatal("hash must not contain the plaintext password")
	}
	if err := checkPassword(hash, "pw123"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := checkPassword(hash, "pw124"); err == nil {
		t.Error("wrong password accepted")
	}
	if err := checkPassword(hash, ""); err == nil {
		t.Error("empty password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := hashPassword("same-password")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	b, err := hashPassword("same-password")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ (salt)")
	}
}
