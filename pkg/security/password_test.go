package security

import (
	"strings"
	"testing"

	"github.com/museshop/backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Keep parameters small so the suite stays fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	encoded, err := HashPassword("correct horse", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", encoded)
	}

	ok, err := VerifyPassword("correct horse", encoded)
	if err != nil || !ok {
		t.Fatalf("verify failed: ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("wrong horse", encoded)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if ok {
		t.Fatal("wrong password should not verify")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("empty password should be rejected")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("pw", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestHashesAreSalted(t *testing.T) {
	cfg := testPasswordConfig()
	a, err := HashPassword("same", cfg)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	b, err := HashPassword("same", cfg)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password should differ")
	}
}
