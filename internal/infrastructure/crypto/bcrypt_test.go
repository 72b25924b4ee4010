package crypto

import (
	"strings"
	"testing"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("secret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret-password" {
		t.Fatalf("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	if !h.Verify("secret-password", hash) {
		t.Fatalf("verify rejected the correct password")
	}
	if h.Verify("wrong-password", hash) {
		t.Fatalf("verify accepted a wrong password")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(4)

	a, _ := h.Hash("same-password")
	b, _ := h.Hash("same-password")
	if a == b {
		t.Fatalf("two hashes of the same password are identical; salting is broken")
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(4)
	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("verify accepted a malformed hash")
	}
}

func TestNewBcryptHasher_CostClamped(t *testing.T) {
	// Out-of-range costs fall back to the library default instead of failing
	// at hash time.
	for _, cost := range []int{-1, 0, 99} {
		h := NewBcryptHasher(cost)
		if _, err := h.Hash("pw"); err != nil {
			t.Fatalf("cost %d: hash failed: %v", cost, err)
		}
	}
}
