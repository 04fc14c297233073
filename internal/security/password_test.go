package security_test

import (
	"testing"

	"github.com/TARUN062005/MERNNETFLIX/internal/security"
)

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := security.HashPassword("pw1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	second, err := security.HashPassword("pw1")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	// per-call salt: same plaintext must not hash to the same value
	if first == second {
		t.Fatalf("expected distinct hashes, got %q twice", first)
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if err := security.CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	if err := security.CheckPassword(hash, "wrong password"); err == nil {
		t.Fatalf("expected mismatch for wrong password")
	}

	if err := security.CheckPassword("not-a-bcrypt-hash", "anything"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
