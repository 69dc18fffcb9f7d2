package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("admin123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("hash must not equal the password")
	}

	if err := CheckPassword("admin123", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong", hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	if _, err := HashPassword("short", bcrypt.MinCost); err == nil {
		t.Error("expected error for short password")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	err := CheckPassword("admin123", "not-a-bcrypt-hash")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected a non-mismatch error, got %v", err)
	}
}

func TestDummyCheckUsesConfiguredCost(t *testing.T) {
	tests := []struct {
		cost int
		want int
	}{
		{bcrypt.MinCost, bcrypt.MinCost},
		{bcrypt.MinCost + 1, bcrypt.MinCost + 1},
		{0, DefaultBcryptCost},
	}
	for _, tt := range tests {
		DummyCheck("anything", tt.cost)
		got, err := bcrypt.Cost(dummyHash(tt.cost))
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("dummy hash for cost %d has cost %d, want %d", tt.cost, got, tt.want)
		}
	}
}
