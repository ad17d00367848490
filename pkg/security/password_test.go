package security

import (
	"strings"
	"testing"

	"github.com/mpalmerin/storefront-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// MinCost keeps the hashing rounds cheap for tests.
	return config.PasswordConfig{Pepper: "unit-test-pepper", BcryptCost: 4}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("hunter2", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if !VerifyPassword("hunter2", hash, cfg) {
		t.Fatal("expected password to verify against its own hash")
	}
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	cfg := testPasswordConfig()

	first, err := HashPassword("hunter2", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("hunter2", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
	if !VerifyPassword("hunter2", first, cfg) || !VerifyPassword("hunter2", second, cfg) {
		t.Fatal("both hashes should verify")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordWrongPassword(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("hunter2", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if VerifyPassword("hunter3", hash, cfg) {
		t.Fatal("wrong password must not verify")
	}
}

func TestVerifyPasswordPepperIsLoadBearing(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("hunter2", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	other := cfg
	other.Pepper = "different-pepper"
	if VerifyPassword("hunter2", hash, other) {
		t.Fatal("hash must not verify under a different pepper")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("hunter2", "not-a-bcrypt-hash", testPasswordConfig()) {
		t.Fatal("malformed hash must be treated as a mismatch")
	}
}

func TestVerifyPasswordSurvivesCostChange(t *testing.T) {
	cfg := testPasswordConfig()

	hash, err := HashPassword("hunter2", cfg)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	raised := cfg
	raised.BcryptCost = 6
	if !VerifyPassword("hunter2", hash, raised) {
		t.Fatal("existing hashes must keep verifying after the cost changes")
	}
}
